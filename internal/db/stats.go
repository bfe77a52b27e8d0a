package db

import "fmt"

// ApplyJudgement folds one host ruling into the player's persistent
// cross-room statistics. Correct rulings add the awarded points and bump
// the correct counter; wrong rulings bump the wrong counter.
func (d *DB) ApplyJudgement(identity, name string, correct bool, points int) error {
	var err error
	if correct {
		_, err = d.Exec(`
			INSERT INTO player_stats (identity, name, total_score, correct_answers)
			VALUES ($1, $2, $3, 1)
			ON CONFLICT (identity) DO UPDATE SET
				name = $2,
				total_score = player_stats.total_score + $3,
				correct_answers = player_stats.correct_answers + 1,
				updated_at = now()
		`, identity, name, points)
	} else {
		_, err = d.Exec(`
			INSERT INTO player_stats (identity, name, wrong_answers)
			VALUES ($1, $2, 1)
			ON CONFLICT (identity) DO UPDATE SET
				name = $2,
				wrong_answers = player_stats.wrong_answers + 1,
				updated_at = now()
		`, identity, name)
	}
	if err != nil {
		return fmt.Errorf("applying judgement for %s: %w", identity, err)
	}
	return nil
}

// RecordFirstBuzz bumps the player's accepted-buzz counter.
func (d *DB) RecordFirstBuzz(identity, name string) error {
	_, err := d.Exec(`
		INSERT INTO player_stats (identity, name, first_buzzes)
		VALUES ($1, $2, 1)
		ON CONFLICT (identity) DO UPDATE SET
			name = $2,
			first_buzzes = player_stats.first_buzzes + 1,
			updated_at = now()
	`, identity, name)
	if err != nil {
		return fmt.Errorf("recording first buzz for %s: %w", identity, err)
	}
	return nil
}

// RecordMatch appends a row of match history for a seat that left a room.
func (d *DB) RecordMatch(identity, roomCode, roomName string, score int) error {
	_, err := d.Exec(`
		INSERT INTO match_history (identity, room_code, room_name, score)
		VALUES ($1, $2, $3, $4)
	`, identity, roomCode, roomName, score)
	if err != nil {
		return fmt.Errorf("recording match for %s: %w", identity, err)
	}
	return nil
}

// RecordAnswer appends a judged answer to the room's answer log.
func (d *DB) RecordAnswer(roomCode, identity, answer, outcome string) error {
	_, err := d.Exec(`
		INSERT INTO answer_log (room_code, identity, answer, outcome)
		VALUES ($1, $2, $3, $4)
	`, roomCode, identity, answer, outcome)
	if err != nil {
		return fmt.Errorf("recording answer for %s: %w", identity, err)
	}
	return nil
}
