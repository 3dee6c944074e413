package sqlite

// Schema is fixed per build. Foreign keys are deliberately not declared:
// referential integrity (pillar references, cascade deletes) is enforced
// by the repository layer inside explicit transactions, and the natural
// keys are backed by UNIQUE indices.
const schema = `
-- Identity table (singleton: at most one row, id pinned to 1)
CREATE TABLE IF NOT EXISTS identity (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    vision TEXT NOT NULL DEFAULT '',
    mission TEXT NOT NULL DEFAULT '',
    life_view TEXT NOT NULL DEFAULT '',
    work_view TEXT NOT NULL DEFAULT '',
    core_values TEXT NOT NULL DEFAULT '[]',
    personality_type TEXT,
    coach_tone TEXT NOT NULL DEFAULT '',
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Pillars table
CREATE TABLE IF NOT EXISTS pillars (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    identity_id INTEGER NOT NULL DEFAULT 1,
    name TEXT NOT NULL CHECK(length(name) > 0),
    description TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    display_order INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_pillars_identity_order ON pillars(identity_id, display_order);

-- Standards table
CREATE TABLE IF NOT EXISTS standards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    pillar_id INTEGER NOT NULL,
    label TEXT NOT NULL CHECK(length(label) > 0),
    metric TEXT NOT NULL,
    target REAL NOT NULL,
    unit TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_standards_pillar ON standards(pillar_id);

-- Goals table
CREATE TABLE IF NOT EXISTS goals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    pillar_id INTEGER,
    title TEXT NOT NULL CHECK(length(title) > 0),
    description TEXT NOT NULL DEFAULT '',
    target_date TEXT,
    status TEXT NOT NULL DEFAULT 'active'
        CHECK(status IN ('active', 'completed', 'paused', 'archived')),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_goals_pillar_status ON goals(pillar_id, status);

-- Milestones table
CREATE TABLE IF NOT EXISTS milestones (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    goal_id INTEGER NOT NULL,
    title TEXT NOT NULL CHECK(length(title) > 0),
    completed INTEGER NOT NULL DEFAULT 0,
    completed_at DATETIME,
    CHECK ((completed = 1) = (completed_at IS NOT NULL))
);

CREATE INDEX IF NOT EXISTS idx_milestones_goal ON milestones(goal_id);

-- Habits table (archived_at NULL while active; archiving is a soft delete)
CREATE TABLE IF NOT EXISTS habits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    pillar_id INTEGER,
    title TEXT NOT NULL CHECK(length(title) > 0),
    description TEXT NOT NULL DEFAULT '',
    frequency TEXT NOT NULL DEFAULT 'daily'
        CHECK(frequency IN ('daily', 'weekly', 'custom')),
    target_days_per_week INTEGER NOT NULL DEFAULT 0
        CHECK(target_days_per_week >= 0 AND target_days_per_week <= 7),
    color TEXT NOT NULL DEFAULT '',
    archived_at DATETIME,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_habits_pillar ON habits(pillar_id);

-- Habit logs table; (habit_id, date) is the natural key
CREATE TABLE IF NOT EXISTS habit_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    habit_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0,
    note TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_habit_logs_habit ON habit_logs(habit_id);
CREATE INDEX IF NOT EXISTS idx_habit_logs_date ON habit_logs(date);
CREATE UNIQUE INDEX IF NOT EXISTS idx_habit_logs_habit_date ON habit_logs(habit_id, date);

-- Reflections table; (type, date) is the natural key
CREATE TABLE IF NOT EXISTS reflections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL
        CHECK(type IN ('daily-am', 'daily-pm', 'weekly', 'monthly', 'quarterly')),
    date TEXT NOT NULL,
    answers TEXT NOT NULL DEFAULT '{}',
    energy_level INTEGER NOT NULL CHECK(energy_level >= 1 AND energy_level <= 10),
    mood INTEGER NOT NULL CHECK(mood >= 1 AND mood <= 10),
    note TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reflections_type ON reflections(type);
CREATE INDEX IF NOT EXISTS idx_reflections_date ON reflections(date);
CREATE UNIQUE INDEX IF NOT EXISTS idx_reflections_type_date ON reflections(type, date);

-- Performance snapshots table; (pillar_id, period) is the natural key,
-- period at month granularity (yyyy-MM)
CREATE TABLE IF NOT EXISTS performance_snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    pillar_id INTEGER NOT NULL,
    period TEXT NOT NULL,
    alignment_state TEXT NOT NULL
        CHECK(alignment_state IN ('aligned', 'improving', 'drifting', 'avoiding', 'regressing')),
    score REAL NOT NULL CHECK(score >= 0 AND score <= 100),
    observed REAL NOT NULL DEFAULT 0,
    target REAL NOT NULL DEFAULT 0,
    note TEXT NOT NULL DEFAULT ''
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_snapshots_pillar_period ON performance_snapshots(pillar_id, period);

-- Advisory alerts table; id is caller-assigned and acts as the
-- idempotency key
CREATE TABLE IF NOT EXISTS advisory_alerts (
    id TEXT PRIMARY KEY,
    severity TEXT NOT NULL
        CHECK(severity IN ('insight', 'challenge', 'warning', 'opportunity')),
    pillar_id INTEGER,
    title TEXT NOT NULL CHECK(length(title) > 0),
    message TEXT NOT NULL DEFAULT '',
    action TEXT NOT NULL DEFAULT '',
    dismissed_at DATETIME,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_alerts_pillar ON advisory_alerts(pillar_id);
CREATE INDEX IF NOT EXISTS idx_alerts_severity ON advisory_alerts(severity);

-- Resources table (unlocked_at NULL = locked)
CREATE TABLE IF NOT EXISTS resources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL CHECK(length(title) > 0),
    author TEXT NOT NULL DEFAULT '',
    type TEXT NOT NULL
        CHECK(type IN ('book', 'article', 'course', 'video')),
    summary TEXT NOT NULL DEFAULT '',
    key_principles TEXT NOT NULL DEFAULT '[]',
    relevant_pillar_ids TEXT NOT NULL DEFAULT '[]',
    unlocked_at DATETIME
);
`
