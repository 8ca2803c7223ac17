package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/ayusman/mudra/internal/pose"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ActionRepository provides CRUD operations for sign action definitions.
type ActionRepository struct {
	db *sql.DB
}

// Actions returns the action repository for this store.
func (s *Store) Actions() *ActionRepository {
	return &ActionRepository{db: s.db}
}

// Create inserts a sign action and its five finger rows in one
// transaction.
func (r *ActionRepository) Create(a *pose.SignAction) error {
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.Exec(
		`INSERT INTO sign_actions (id, name, description, category, duration, keyframes, difficulty, tags,
			palm_rot_w, palm_rot_x, palm_rot_y, palm_rot_z,
			palm_pos_x, palm_pos_y, palm_pos_z, palm_tilt, palm_openness,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Description, a.Category, a.Duration, a.Keyframes, a.Difficulty, string(tags),
		a.Hand.Palm.Rotation.W, a.Hand.Palm.Rotation.X, a.Hand.Palm.Rotation.Y, a.Hand.Palm.Rotation.Z,
		a.Hand.Palm.Position.X, a.Hand.Palm.Position.Y, a.Hand.Palm.Position.Z,
		a.Hand.Palm.Tilt, a.Hand.Palm.Openness,
		now, now,
	)
	if err != nil {
		return err
	}

	for _, fp := range a.Hand.Fingers {
		_, err = tx.Exec(
			`INSERT INTO action_fingers (action_id, finger, base_angle, middle_angle, distal_angle, spread, state)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.ID, fp.Finger.String(), fp.Joints.Base, fp.Joints.Middle, fp.Joints.Distal, fp.Spread, string(fp.State),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves a sign action by its ID.
func (r *ActionRepository) GetByID(id string) (*pose.SignAction, error) {
	return r.getOne(`WHERE id = ?`, id)
}

// GetByName retrieves a sign action by its name.
func (r *ActionRepository) GetByName(name string) (*pose.SignAction, error) {
	return r.getOne(`WHERE name = ?`, name)
}

func (r *ActionRepository) getOne(where string, arg any) (*pose.SignAction, error) {
	a := &pose.SignAction{}
	var tags string

	err := r.db.QueryRow(
		`SELECT id, name, description, category, duration, keyframes, difficulty, tags,
			palm_rot_w, palm_rot_x, palm_rot_y, palm_rot_z,
			palm_pos_x, palm_pos_y, palm_pos_z, palm_tilt, palm_openness
		 FROM sign_actions `+where,
		arg,
	).Scan(&a.ID, &a.Name, &a.Description, &a.Category, &a.Duration, &a.Keyframes, &a.Difficulty, &tags,
		&a.Hand.Palm.Rotation.W, &a.Hand.Palm.Rotation.X, &a.Hand.Palm.Rotation.Y, &a.Hand.Palm.Rotation.Z,
		&a.Hand.Palm.Position.X, &a.Hand.Palm.Position.Y, &a.Hand.Palm.Position.Z,
		&a.Hand.Palm.Tilt, &a.Hand.Palm.Openness)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
		return nil, err
	}

	if err := r.loadFingers(a); err != nil {
		return nil, err
	}

	return a, nil
}

// loadFingers fills in the five finger rows of an action. Fingers missing
// from the database stay at their extended zero pose.
func (r *ActionRepository) loadFingers(a *pose.SignAction) error {
	for i := 0; i < pose.NumFingers; i++ {
		a.Hand.Fingers[i] = pose.ExtendedFinger(pose.Finger(i))
	}

	rows, err := r.db.Query(
		`SELECT finger, base_angle, middle_angle, distal_angle, spread, state
		 FROM action_fingers WHERE action_id = ?`,
		a.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, state string
		var fp pose.FingerPose

		err := rows.Scan(&name, &fp.Joints.Base, &fp.Joints.Middle, &fp.Joints.Distal, &fp.Spread, &state)
		if err != nil {
			return err
		}

		finger, ok := pose.FingerByName(name)
		if !ok {
			continue
		}
		fp.Finger = finger
		fp.State = pose.FingerState(state)
		a.Hand.Fingers[finger] = fp
	}

	return rows.Err()
}

// List retrieves all sign actions from the database.
func (r *ActionRepository) List() ([]*pose.SignAction, error) {
	rows, err := r.db.Query(
		`SELECT id FROM sign_actions ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	actions := make([]*pose.SignAction, 0, len(ids))
	for _, id := range ids {
		a, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}

	return actions, nil
}

// Update rewrites an existing sign action and its finger rows.
func (r *ActionRepository) Update(a *pose.SignAction) error {
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE sign_actions SET name = ?, description = ?, category = ?, duration = ?,
			keyframes = ?, difficulty = ?, tags = ?,
			palm_rot_w = ?, palm_rot_x = ?, palm_rot_y = ?, palm_rot_z = ?,
			palm_pos_x = ?, palm_pos_y = ?, palm_pos_z = ?, palm_tilt = ?, palm_openness = ?,
			updated_at = ?
		 WHERE id = ?`,
		a.Name, a.Description, a.Category, a.Duration, a.Keyframes, a.Difficulty, string(tags),
		a.Hand.Palm.Rotation.W, a.Hand.Palm.Rotation.X, a.Hand.Palm.Rotation.Y, a.Hand.Palm.Rotation.Z,
		a.Hand.Palm.Position.X, a.Hand.Palm.Position.Y, a.Hand.Palm.Position.Z,
		a.Hand.Palm.Tilt, a.Hand.Palm.Openness,
		time.Now(), a.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM action_fingers WHERE action_id = ?`, a.ID); err != nil {
		return err
	}
	for _, fp := range a.Hand.Fingers {
		_, err = tx.Exec(
			`INSERT INTO action_fingers (action_id, finger, base_angle, middle_angle, distal_angle, spread, state)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.ID, fp.Finger.String(), fp.Joints.Base, fp.Joints.Middle, fp.Joints.Distal, fp.Spread, string(fp.State),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes a sign action and its finger rows by ID.
func (r *ActionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sign_actions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the number of stored sign actions.
func (r *ActionRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM sign_actions`).Scan(&n)
	return n, err
}

// Seed inserts the given actions when the table is empty, so a fresh
// database starts with the builtin catalog.
func (r *ActionRepository) Seed(actions []*pose.SignAction) error {
	n, err := r.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, a := range actions {
		if err := r.Create(a); err != nil {
			return err
		}
	}
	return nil
}
