package storage

const initSchemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    start_time       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    label            TEXT NOT NULL,
    heading          TEXT,
    source           TEXT NOT NULL,
    skipped_rows     INTEGER NOT NULL DEFAULT 0,
    skipped_readings INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS samples (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL REFERENCES sessions (id),
    timestamp  TIMESTAMP NOT NULL,
    frequency  REAL NOT NULL,
    bin_width  REAL NOT NULL,
    power      REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS vantages (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    name                TEXT NOT NULL,
    north_feet          REAL NOT NULL,
    east_feet           REAL NOT NULL,
    antenna_height_feet REAL NOT NULL
);`

// Indexes are created on close so bulk imports are not slowed down by
// incremental index maintenance.
const initIndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_samples_session_time ON samples (session_id, timestamp, frequency);
CREATE INDEX IF NOT EXISTS idx_samples_frequency ON samples (session_id, frequency);`

const (
	insertSessionSQL = `
INSERT INTO sessions (start_time,
                      label,
                      heading,
                      source,
                      skipped_rows,
                      skipped_readings)
VALUES (CURRENT_TIMESTAMP, ?, ?, ?, ?, ?)`

	selectSessionSQL = `
SELECT
    id,
    start_time,
    label,
    heading,
    source,
    skipped_rows,
    skipped_readings
FROM sessions
WHERE
    id = ?`

	selectSessionsSQL = `
SELECT
    id,
    start_time,
    label,
    heading,
    source,
    skipped_rows,
    skipped_readings
FROM sessions
ORDER BY start_time`

	insertSamplesSQL = `
INSERT INTO samples (session_id,
                     timestamp,
                     frequency,
                     bin_width,
                     power)
VALUES `

	insertVantageSQL = `
INSERT INTO vantages (name,
                      north_feet,
                      east_feet,
                      antenna_height_feet)
VALUES (?, ?, ?, ?)`

	selectVantagesSQL = `
SELECT
    id,
    name,
    north_feet,
    east_feet,
    antenna_height_feet
FROM vantages
ORDER BY name`

	selectSamplesSQL = `
SELECT
    timestamp,
    frequency,
    bin_width,
    power
FROM samples
WHERE
    session_id = ?`
)
