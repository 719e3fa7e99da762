// Package services содержит бизнес-логику для управления заметками и кешированием.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
	"github.com/magabrotheeeer/notes-keeper/internal/storage/repository"
)

var (
	// ErrNoteNotFound заметка отсутствует либо принадлежит другому пользователю.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNoChanges в запросе на обновление не передано ни одного содержательного поля.
	ErrNoChanges = errors.New("no changes provided")
)

// NoteRepository определяет методы для работы с заметками в хранилище.
// Все методы чтения и мутации фильтруют по ID заметки и владельцу одновременно.
type NoteRepository interface {
	// CreateNote добавляет новую заметку и возвращает её ID.
	CreateNote(ctx context.Context, note models.Note) (string, error)
	// GetNote возвращает заметку по ID и владельцу.
	GetNote(ctx context.Context, id, userUID string) (*models.Note, error)
	// UpdateNote обновляет заметку и возвращает количество изменённых записей.
	UpdateNote(ctx context.Context, note models.Note, id, userUID string) (int, error)
	// RemoveNote удаляет заметку и возвращает количество удалённых записей.
	RemoveNote(ctx context.Context, id, userUID string) (int, error)
	// ListNotes возвращает заметки пользователя, закреплённые первыми.
	ListNotes(ctx context.Context, userUID string) ([]*models.Note, error)
	// SearchNotes ищет подстроку в заголовке или тексте заметок пользователя.
	SearchNotes(ctx context.Context, userUID, query string) ([]*models.Note, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// NoteService реализует бизнес-логику работы с заметками, включая кеширование.
type NoteService struct {
	repo  NoteRepository
	cache Cache
	log   *slog.Logger
}

// NewNoteService создает новый экземпляр NoteService.
func NewNoteService(repo NoteRepository, cache Cache, log *slog.Logger) *NoteService {
	return &NoteService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую заметку пользователя и возвращает её.
func (s *NoteService) Create(ctx context.Context, userUID string, req models.CreateNoteRequest) (*models.Note, error) {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	note := models.Note{
		ID:      uuid.NewString(),
		Title:   req.Title,
		Content: req.Content,
		Tags:    tags,
		UserUID: userUID,
	}

	id, err := s.repo.CreateNote(ctx, note)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.GetNote(ctx, id, userUID)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new note", slog.String("id", id))
	s.cacheNote(created)
	return created, nil
}

// Update частично обновляет заметку.
//
// Пустые title/content/tags считаются непереданными; если непереданы все три,
// возвращается ErrNoChanges — один лишь is_pinned обновление не оправдывает.
// Флаг is_pinned внутри этой операции применяется только со значением true.
func (s *NoteService) Update(ctx context.Context, userUID, id string, req models.UpdateNoteRequest) (*models.Note, error) {
	if req.Title == "" && req.Content == "" && len(req.Tags) == 0 {
		return nil, ErrNoChanges
	}

	note, err := s.repo.GetNote(ctx, id, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Content != "" {
		note.Content = req.Content
	}
	if len(req.Tags) > 0 {
		note.Tags = req.Tags
	}
	if req.IsPinned != nil && *req.IsPinned {
		note.IsPinned = true
	}

	if err := s.saveNote(ctx, note, id, userUID); err != nil {
		return nil, err
	}
	return note, nil
}

// SetPinned выставляет признак закрепления, включая снятие (false).
func (s *NoteService) SetPinned(ctx context.Context, userUID, id string, isPinned bool) (*models.Note, error) {
	note, err := s.repo.GetNote(ctx, id, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	note.IsPinned = isPinned
	if err := s.saveNote(ctx, note, id, userUID); err != nil {
		return nil, err
	}
	return note, nil
}

// Remove удаляет заметку пользователя и инвалидирует кеш.
func (s *NoteService) Remove(ctx context.Context, userUID, id string) error {
	count, err := s.repo.RemoveNote(ctx, id, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoteNotFound
	}

	cacheKey := fmt.Sprintf("note:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove note from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return nil
}

// List возвращает все заметки пользователя, закреплённые первыми.
func (s *NoteService) List(ctx context.Context, userUID string) ([]*models.Note, error) {
	return s.repo.ListNotes(ctx, userUID)
}

// Search возвращает заметки пользователя, содержащие подстроку query
// в заголовке или тексте без учёта регистра.
func (s *NoteService) Search(ctx context.Context, userUID, query string) ([]*models.Note, error) {
	return s.repo.SearchNotes(ctx, userUID, query)
}

func (s *NoteService) saveNote(ctx context.Context, note *models.Note, id, userUID string) error {
	count, err := s.repo.UpdateNote(ctx, *note, id, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoteNotFound
	}
	s.cacheNote(note)
	return nil
}

func (s *NoteService) cacheNote(note *models.Note) {
	cacheKey := fmt.Sprintf("note:%s", note.ID)
	if err := s.cache.Set(cacheKey, note, time.Hour); err != nil {
		s.log.Warn("failed to cache note", slog.String("key", cacheKey), sl.Err(err))
	}
}
