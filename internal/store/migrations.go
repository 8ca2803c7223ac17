package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sign actions table - stores gesture definitions and the palm transform
		`CREATE TABLE IF NOT EXISTS sign_actions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			duration REAL NOT NULL CHECK(duration > 0),
			keyframes INTEGER NOT NULL DEFAULT 0,
			difficulty INTEGER NOT NULL DEFAULT 1,
			tags TEXT NOT NULL DEFAULT '[]',
			palm_rot_w REAL NOT NULL DEFAULT 1,
			palm_rot_x REAL NOT NULL DEFAULT 0,
			palm_rot_y REAL NOT NULL DEFAULT 0,
			palm_rot_z REAL NOT NULL DEFAULT 0,
			palm_pos_x REAL NOT NULL DEFAULT 0,
			palm_pos_y REAL NOT NULL DEFAULT 0,
			palm_pos_z REAL NOT NULL DEFAULT 0,
			palm_tilt REAL NOT NULL DEFAULT 0,
			palm_openness REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Action fingers table - one row per finger of each action
		`CREATE TABLE IF NOT EXISTS action_fingers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			action_id TEXT NOT NULL REFERENCES sign_actions(id) ON DELETE CASCADE,
			finger TEXT NOT NULL CHECK(finger IN ('thumb', 'index', 'middle', 'ring', 'pinky')),
			base_angle REAL NOT NULL DEFAULT 0,
			middle_angle REAL NOT NULL DEFAULT 0,
			distal_angle REAL NOT NULL DEFAULT 0,
			spread REAL NOT NULL DEFAULT 0,
			state TEXT NOT NULL DEFAULT 'extended',
			UNIQUE(action_id, finger)
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_action_fingers_action_id ON action_fingers(action_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sign_actions_category ON sign_actions(category)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
