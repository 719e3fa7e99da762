package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/notes-keeper/internal/models"
)

func TestStorage_ListNotes(t *testing.T) {
	type args struct {
		ctx     context.Context
		userUID string
	}

	ownerUID := uuid.New().String()
	strangerUID := uuid.New().String()
	baseTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setup     func(t *testing.T, factory *TestDataFactory)
		args      args
		wantErr   bool
		wantCount int
		wantOrder []string
	}{
		{
			name: "закрепленные заметки идут первыми",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, ownerUID, "Owner", "owner@example.com", "hash", "user")
				factory.CreateNoteAt(t, "11111111-1111-1111-1111-111111111111",
					"first", "plain", nil, false, ownerUID, baseTime)
				factory.CreateNoteAt(t, "22222222-2222-2222-2222-222222222222",
					"second", "pinned late", nil, true, ownerUID, baseTime.Add(2*time.Hour))
				factory.CreateNoteAt(t, "33333333-3333-3333-3333-333333333333",
					"third", "plain late", nil, false, ownerUID, baseTime.Add(time.Hour))
			},
			args:      args{ctx: context.Background(), userUID: ownerUID},
			wantCount: 3,
			wantOrder: []string{"second", "first", "third"},
		},
		{
			name: "чужие заметки не возвращаются",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, ownerUID, "Owner", "owner@example.com", "hash", "user")
				factory.CreateUser(t, strangerUID, "Stranger", "stranger@example.com", "hash", "user")
				factory.CreateNote(t, uuid.New().String(), "mine", "content", nil, false, ownerUID)
				factory.CreateNote(t, uuid.New().String(), "theirs", "content", nil, false, strangerUID)
			},
			args:      args{ctx: context.Background(), userUID: ownerUID},
			wantCount: 1,
			wantOrder: []string{"mine"},
		},
		{
			name: "пустой список без ошибки",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, ownerUID, "Owner", "owner@example.com", "hash", "user")
			},
			args:      args{ctx: context.Background(), userUID: ownerUID},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.ListNotes(tt.args.ctx, tt.args.userUID)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, got, tt.wantCount)
				for i, title := range tt.wantOrder {
					assert.Equal(t, title, got[i].Title)
				}
			}
		})
	}
}

func TestStorage_SearchNotes(t *testing.T) {
	ownerUID := uuid.New().String()
	strangerUID := uuid.New().String()

	tests := []struct {
		name       string
		setup      func(t *testing.T, factory *TestDataFactory)
		query      string
		wantTitles []string
	}{
		{
			name: "поиск без учета регистра по заголовку",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, ownerUID, "Owner", "owner@example.com", "hash", "user")
				factory.CreateNote(t, uuid.New().String(), "Grocery List", "milk", nil, false, ownerUID)
				factory.CreateNote(t, uuid.New().String(), "Workout", "legs", nil, false, ownerUID)
			},
			query:      "grocery",
			wantTitles: []string{"Grocery List"},
		},
		{
			name: "поиск по тексту заметки",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, ownerUID, "Owner", "owner@example.com", "hash", "user")
				factory.CreateNote(t, uuid.New().String(), "Plans", "buy MILK tomorrow", nil, false, ownerUID)
				factory.CreateNote(t, uuid.New().String(), "Other", "nothing here", nil, false, ownerUID)
			},
			query:      "milk",
			wantTitles: []string{"Plans"},
		},
		{
			name: "чужие заметки не попадают в выдачу",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, ownerUID, "Owner", "owner@example.com", "hash", "user")
				factory.CreateUser(t, strangerUID, "Stranger", "stranger@example.com", "hash", "user")
				factory.CreateNote(t, uuid.New().String(), "shared word", "content", nil, false, strangerUID)
			},
			query:      "shared",
			wantTitles: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.SearchNotes(context.Background(), ownerUID, tt.query)
			require.NoError(t, err)

			var titles []string
			for _, note := range got {
				titles = append(titles, note.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestStorage_GetNote(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := uuid.New().String()
	strangerUID := uuid.New().String()
	factory.CreateUser(t, ownerUID, "Owner", "owner@example.com", "hash", "user")
	factory.CreateUser(t, strangerUID, "Stranger", "stranger@example.com", "hash", "user")

	noteID := uuid.New().String()
	tags := []string{"work", "urgent", "later"}
	factory.CreateNote(t, noteID, "Title", "Content", tags, true, ownerUID)

	t.Run("успешное получение с сохранением порядка тегов", func(t *testing.T) {
		got, err := storage.GetNote(context.Background(), noteID, ownerUID)
		require.NoError(t, err)
		assert.Equal(t, "Title", got.Title)
		assert.Equal(t, "Content", got.Content)
		assert.True(t, got.IsPinned)
		assert.Equal(t, tags, got.Tags)
	})

	t.Run("чужая заметка недоступна", func(t *testing.T) {
		_, err := storage.GetNote(context.Background(), noteID, strangerUID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("несуществующая заметка", func(t *testing.T) {
		_, err := storage.GetNote(context.Background(), uuid.New().String(), ownerUID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestStorage_CreateNote(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := uuid.New().String()
	factory.CreateUser(t, ownerUID, "Owner", "owner@example.com", "hash", "user")

	note := models.Note{
		ID:      uuid.New().String(),
		Title:   "Fresh",
		Content: "created via storage",
		Tags:    []string{},
		UserUID: ownerUID,
	}
	newID, err := storage.CreateNote(context.Background(), note)
	require.NoError(t, err)
	assert.Equal(t, note.ID, newID)

	got, err := storage.GetNote(context.Background(), newID, ownerUID)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", got.Title)
	assert.False(t, got.IsPinned)
	assert.Equal(t, []string{}, got.Tags)
}

func TestStorage_UpdateNote(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := uuid.New().String()
	strangerUID := uuid.New().String()
	factory.CreateUser(t, ownerUID, "Owner", "owner@example.com", "hash", "user")

	noteID := uuid.New().String()
	factory.CreateNote(t, noteID, "Old", "old content", []string{"a"}, false, ownerUID)

	updated := models.Note{
		Title:    "New",
		Content:  "new content",
		Tags:     []string{"b", "a"},
		IsPinned: true,
	}

	t.Run("успешное обновление", func(t *testing.T) {
		rows, err := storage.UpdateNote(context.Background(), updated, noteID, ownerUID)
		require.NoError(t, err)
		assert.Equal(t, 1, rows)

		got, err := storage.GetNote(context.Background(), noteID, ownerUID)
		require.NoError(t, err)
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, []string{"b", "a"}, got.Tags)
		assert.True(t, got.IsPinned)
	})

	t.Run("чужая заметка не обновляется", func(t *testing.T) {
		rows, err := storage.UpdateNote(context.Background(), updated, noteID, strangerUID)
		require.NoError(t, err)
		assert.Equal(t, 0, rows)
	})
}

func TestStorage_RemoveNote(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := uuid.New().String()
	strangerUID := uuid.New().String()
	factory.CreateUser(t, ownerUID, "Owner", "owner@example.com", "hash", "user")

	noteID := uuid.New().String()
	factory.CreateNote(t, noteID, "Doomed", "content", nil, false, ownerUID)

	t.Run("чужая заметка не удаляется", func(t *testing.T) {
		rows, err := storage.RemoveNote(context.Background(), noteID, strangerUID)
		require.NoError(t, err)
		assert.Equal(t, 0, rows)
	})

	t.Run("успешное удаление", func(t *testing.T) {
		rows, err := storage.RemoveNote(context.Background(), noteID, ownerUID)
		require.NoError(t, err)
		assert.Equal(t, 1, rows)

		_, err = storage.GetNote(context.Background(), noteID, ownerUID)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestStorage_CreateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	user := models.User{
		FullName:     "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         models.RoleUser,
	}

	t.Run("успешное создание", func(t *testing.T) {
		uid, err := storage.CreateUser(context.Background(), user)
		require.NoError(t, err)
		assert.NotEmpty(t, uid)

		got, err := storage.GetUserByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, uid, got.UID)
		assert.Equal(t, "Alice", got.FullName)
		assert.Equal(t, models.RoleUser, got.Role)
	})

	t.Run("повторный email нарушает уникальный индекс", func(t *testing.T) {
		_, err := storage.CreateUser(context.Background(), user)
		require.Error(t, err)
	})
}

func TestStorage_GetUserByEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.GetUserByEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStorage_ListUsers(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, uuid.New().String(), "Alice", "alice@example.com", "hash", "user")
	factory.CreateUser(t, uuid.New().String(), "Bob", "bob@example.com", "hash", "admin")

	got, err := storage.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, u := range got {
		assert.Empty(t, u.PasswordHash, "password hash must not be selected")
	}
}

func TestStorage_RemoveUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	noteID := uuid.New().String()
	factory.CreateUser(t, userUID, "Alice", "alice@example.com", "hash", "user")
	factory.CreateNote(t, noteID, "Orphan", "stays behind", nil, false, userUID)

	t.Run("несуществующий пользователь", func(t *testing.T) {
		rows, err := storage.RemoveUser(context.Background(), uuid.New().String())
		require.NoError(t, err)
		assert.Equal(t, 0, rows)
	})

	t.Run("удаление не трогает заметки", func(t *testing.T) {
		rows, err := storage.RemoveUser(context.Background(), userUID)
		require.NoError(t, err)
		assert.Equal(t, 1, rows)

		got, err := storage.GetNote(context.Background(), noteID, userUID)
		require.NoError(t, err)
		assert.Equal(t, "Orphan", got.Title)
	})
}
