package tasks_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archypix/arrangement-engine/internal/collaborators/picturestore"
	"github.com/archypix/arrangement-engine/internal/infrastructure/jobs/tasks"
)

type fakeThumbnailGenerator struct {
	generateErr error
	calls       []string
}

func (f *fakeThumbnailGenerator) Generate(_ context.Context, _ []byte, variant string) ([]byte, error) {
	f.calls = append(f.calls, variant)
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return []byte("variant:" + variant), nil
}

type fakeStorage struct {
	objects  map[string][]byte
	getErr   error
	putErr   error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Put(context.Context, string, io.Reader, int64, picturestore.PutOptions) error {
	return errors.New("not implemented")
}

func (f *fakeStorage) PutBytes(_ context.Context, key string, data []byte, _ picturestore.PutOptions) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Get(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorage) GetBytes(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (f *fakeStorage) Delete(context.Context, string) error { return nil }

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStorage) URL(string) string { return "" }

func (f *fakeStorage) PresignedURL(context.Context, string, time.Duration) (string, error) {
	return "", errors.New("not supported")
}

func (f *fakeStorage) Stat(context.Context, string) (*picturestore.ObjectInfo, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorage) Provider() string { return "fake" }

func TestThumbnailGenerateHandler_ProcessTask(t *testing.T) {
	t.Parallel()

	t.Run("generates and stores every variant", func(t *testing.T) {
		t.Parallel()

		storage := newFakeStorage()
		storage.objects["originals/pic-1"] = []byte("original bytes")
		generator := &fakeThumbnailGenerator{}
		handler := tasks.NewThumbnailGenerateHandler(generator, storage, zerolog.Nop())

		payload := tasks.ThumbnailGeneratePayload{
			PictureID:  "pic-1",
			StorageKey: "originals/pic-1",
			OwnerID:    "owner-1",
			EnqueuedAt: time.Now(),
		}
		task, err := tasks.NewThumbnailGenerateTask(payload)
		require.NoError(t, err)

		err = handler.ProcessTask(context.Background(), task)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"thumbnail", "small", "medium", "large"}, generator.calls)
		assert.Equal(t, []byte("variant:thumbnail"), storage.objects["pictures/pic-1/thumbnail.webp"])
		assert.Equal(t, []byte("variant:large"), storage.objects["pictures/pic-1/large.webp"])
	})

	t.Run("missing original returns error", func(t *testing.T) {
		t.Parallel()

		storage := newFakeStorage()
		generator := &fakeThumbnailGenerator{}
		handler := tasks.NewThumbnailGenerateHandler(generator, storage, zerolog.Nop())

		payload := tasks.ThumbnailGeneratePayload{PictureID: "pic-2", StorageKey: "originals/missing"}
		task, err := tasks.NewThumbnailGenerateTask(payload)
		require.NoError(t, err)

		err = handler.ProcessTask(context.Background(), task)
		require.Error(t, err)
		assert.Empty(t, generator.calls)
	})

	t.Run("generator failure stops further variants", func(t *testing.T) {
		t.Parallel()

		storage := newFakeStorage()
		storage.objects["originals/pic-3"] = []byte("original bytes")
		generator := &fakeThumbnailGenerator{generateErr: errors.New("decode failed")}
		handler := tasks.NewThumbnailGenerateHandler(generator, storage, zerolog.Nop())

		payload := tasks.ThumbnailGeneratePayload{PictureID: "pic-3", StorageKey: "originals/pic-3"}
		task, err := tasks.NewThumbnailGenerateTask(payload)
		require.NoError(t, err)

		err = handler.ProcessTask(context.Background(), task)
		require.Error(t, err)
		assert.Len(t, generator.calls, 1)
	})
}
