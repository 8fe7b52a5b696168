package deck

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLStore works unchanged on both supported drivers: every statement uses
// $1 placeholders and syntax common to sqlite and postgres.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ReplaceDeck(ctx context.Context, slides []string, slideType string) (Deck, error) {
	sj, err := json.Marshal(slides)
	if err != nil {
		return Deck{}, err
	}
	if slideType == "" {
		slideType = SlideTypeImage
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Deck{}, err
	}
	defer tx.Rollback()

	var version int64
	if err := tx.QueryRowContext(ctx, `SELECT version FROM decks WHERE id=1`).Scan(&version); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return Deck{}, err
		}
		version = 0
	}
	version++

	now := time.Now().Unix()
	_, err = tx.ExecContext(ctx, `INSERT INTO decks (id,version,slide_type,slides_json,created_at)
		VALUES (1,$1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET version=EXCLUDED.version, slide_type=EXCLUDED.slide_type,
			slides_json=EXCLUDED.slides_json, created_at=EXCLUDED.created_at`,
		version, slideType, string(sj), now)
	if err != nil {
		return Deck{}, err
	}
	// A new deck invalidates everything recorded against the old one.
	if _, err := tx.ExecContext(ctx, `DELETE FROM responses`); err != nil {
		return Deck{}, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM positions`); err != nil {
		return Deck{}, err
	}
	if err := tx.Commit(); err != nil {
		return Deck{}, err
	}
	return Deck{Version: version, SlideType: slideType, Slides: slides, CreatedAt: now}, nil
}

func (s *SQLStore) CurrentDeck(ctx context.Context) (Deck, error) {
	row := s.db.QueryRowContext(ctx, `SELECT version,slide_type,slides_json,created_at FROM decks WHERE id=1`)
	var d Deck
	var sj string
	if err := row.Scan(&d.Version, &d.SlideType, &sj, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Deck{}, nil
		}
		return Deck{}, err
	}
	if err := json.Unmarshal([]byte(sj), &d.Slides); err != nil {
		return Deck{}, err
	}
	return d, nil
}

func (s *SQLStore) RecordResponse(ctx context.Context, userID string, slideIndex int, answer string) error {
	if !ValidAnswer(answer) {
		return nil
	}
	d, err := s.CurrentDeck(ctx)
	if err != nil {
		return err
	}
	if d.Empty() {
		return ErrNoDeck
	}
	// First and last slides never solicit an answer.
	if slideIndex <= 1 || slideIndex >= d.Size() {
		return nil
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO responses (user_id,slide_index,answer,recorded_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id,slide_index) DO UPDATE SET answer=EXCLUDED.answer, recorded_at=EXCLUDED.recorded_at`,
		userID, slideIndex, answer, time.Now().Unix())
	return err
}

func (s *SQLStore) Responses(ctx context.Context) ([]Response, error) {
	return s.queryResponses(ctx, `SELECT user_id,slide_index,answer FROM responses ORDER BY slide_index, user_id`)
}

func (s *SQLStore) UserResponses(ctx context.Context, userID string) ([]Response, error) {
	return s.queryResponses(ctx, `SELECT user_id,slide_index,answer FROM responses WHERE user_id=$1 ORDER BY slide_index`, userID)
}

func (s *SQLStore) queryResponses(ctx context.Context, q string, args ...any) ([]Response, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Response{}
	for rows.Next() {
		var r Response
		if err := rows.Scan(&r.UserID, &r.SlideIndex, &r.Answer); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) Position(ctx context.Context, userID string) (Position, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT user_id,deck_version,current_index FROM positions WHERE user_id=$1`, userID)
	var p Position
	if err := row.Scan(&p.UserID, &p.DeckVersion, &p.CurrentIndex); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Position{}, false, nil
		}
		return Position{}, false, err
	}
	return p, true, nil
}

func (s *SQLStore) SetPosition(ctx context.Context, p Position) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO positions (user_id,deck_version,current_index)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id) DO UPDATE SET deck_version=EXCLUDED.deck_version, current_index=EXCLUDED.current_index`,
		p.UserID, p.DeckVersion, p.CurrentIndex)
	return err
}
