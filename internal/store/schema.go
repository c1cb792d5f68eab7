package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS model_days (
    slug                 TEXT NOT NULL,
    day                  TEXT NOT NULL,
    prompt_tokens        INTEGER NOT NULL DEFAULT 0,
    completion_tokens    INTEGER NOT NULL DEFAULT 0,
    reasoning_tokens     INTEGER NOT NULL DEFAULT 0,
    cached_tokens        INTEGER NOT NULL DEFAULT 0,
    request_count        INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (slug, day)
);

CREATE TABLE IF NOT EXISTS fetch_tracker (
    slug                 TEXT PRIMARY KEY,
    fetched_on           TEXT NOT NULL,
    day_count            INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_model_days_day ON model_days(day);
`
