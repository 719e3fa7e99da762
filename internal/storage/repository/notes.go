package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/notes-keeper/internal/models"
)

// Теги хранятся в колонке jsonb: порядок элементов сохраняется,
// а чтение идёт через стандартный database/sql без кодеков массивов.

// CreateNote вставляет новую заметку и возвращает её ID.
func (s *Storage) CreateNote(ctx context.Context, note models.Note) (string, error) {
	const op = "storage.CreateNote"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO notes (id, title, content, tags, is_pinned, user_uid)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID string
	err = s.DB.QueryRowContext(ctx, query,
		note.ID, note.Title, note.Content, tags, note.IsPinned, note.UserUID).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetNote возвращает заметку по ID с фильтром по владельцу или ErrNotFound.
func (s *Storage) GetNote(ctx context.Context, id, userUID string) (*models.Note, error) {
	const op = "storage.GetNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, tags, is_pinned, user_uid, created_on
			  FROM notes
			  WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return note, nil
}

// UpdateNote обновляет заметку по ID с фильтром по владельцу
// и возвращает количество изменённых строк.
func (s *Storage) UpdateNote(ctx context.Context, note models.Note, id, userUID string) (int, error) {
	const op = "storage.UpdateNote"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE notes
			  SET title = $1, content = $2, tags = $3, is_pinned = $4
			  WHERE id = $5 AND user_uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		note.Title, note.Content, tags, note.IsPinned, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveNote удаляет заметку по ID с фильтром по владельцу
// и возвращает количество удалённых строк.
func (s *Storage) RemoveNote(ctx context.Context, id, userUID string) (int, error) {
	const op = "storage.RemoveNote"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM notes WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListNotes возвращает все заметки пользователя: сперва закреплённые,
// внутри групп — в порядке создания.
func (s *Storage) ListNotes(ctx context.Context, userUID string) ([]*models.Note, error) {
	const op = "storage.ListNotes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, tags, is_pinned, user_uid, created_on
			  FROM notes
			  WHERE user_uid = $1
			  ORDER BY is_pinned DESC, created_on, id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := collectNotes(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SearchNotes возвращает заметки пользователя, в заголовке или тексте которых
// встречается подстрока query без учёта регистра.
func (s *Storage) SearchNotes(ctx context.Context, userUID, searchQuery string) ([]*models.Note, error) {
	const op = "storage.SearchNotes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, tags, is_pinned, user_uid, created_on
			  FROM notes
			  WHERE user_uid = $1
			    AND (title ILIKE '%' || $2 || '%' OR content ILIKE '%' || $2 || '%')
			  ORDER BY is_pinned DESC, created_on, id`
	rows, err := s.DB.QueryContext(ctx, query, userUID, searchQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := collectNotes(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (*models.Note, error) {
	var note models.Note
	var tags []byte
	if err := row.Scan(&note.ID, &note.Title, &note.Content, &tags,
		&note.IsPinned, &note.UserUID, &note.CreatedOn); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &note.Tags); err != nil {
		return nil, err
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	return &note, nil
}

func collectNotes(rows *sql.Rows) ([]*models.Note, error) {
	var result []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
