package storage

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := newStore(t)

	_, err := s.Get("credential", "urn:uuid:1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, cerrdefs.IsNotFound(err))

	rec := Record{
		Type:  "credential",
		ID:    "urn:uuid:1",
		Value: json.RawMessage(`{"id":"urn:uuid:1"}`),
		Tags:  map[string]string{"issuer": "did:example:issuer"},
	}
	require.NoError(t, s.Put(rec))

	got, err := s.Get("credential", "urn:uuid:1")
	require.NoError(t, err)
	assert.Equal(t, rec.Type, got.Type)
	assert.Equal(t, rec.ID, got.ID)
	assert.JSONEq(t, string(rec.Value), string(got.Value))
	assert.Equal(t, rec.Tags, got.Tags)
	assert.False(t, got.UpdatedAt.IsZero())

	err = s.Put(Record{Type: "credential"})
	assert.True(t, cerrdefs.IsInvalidArgument(err))
}

func TestListDelete(t *testing.T) {
	s := newStore(t)

	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, s.Put(Record{Type: "credential", ID: id, Value: json.RawMessage(`{}`)}))
	}
	require.NoError(t, s.Put(Record{Type: "presentation", ID: "p", Value: json.RawMessage(`{}`)}))

	records, err := s.List("credential")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "c", records[2].ID)

	require.NoError(t, s.Delete("credential", "b"))
	require.NoError(t, s.Delete("credential", "missing"))
	records, err = s.List("credential")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = s.List("unknown")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestResave(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Put(Record{Type: "credential", ID: "a", Value: json.RawMessage(`{"v":1}`)}))
	require.NoError(t, s.Put(Record{Type: "credential", ID: "b", Value: json.RawMessage(`{"v":1}`)}))
	before, err := s.Get("credential", "a")
	require.NoError(t, err)

	n, err := s.Resave("credential", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	after, err := s.Get("credential", "a")
	require.NoError(t, err)
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))

	n, err = s.Resave("credential", func(r Record) (Record, error) {
		r.Value = json.RawMessage(`{"v":2}`)
		return r, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	got, err := s.Get("credential", "b")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got.Value))

	t.Run("failure rolls back", func(t *testing.T) {
		_, err := s.Resave("credential", func(r Record) (Record, error) {
			if r.ID == "b" {
				return r, errors.New("boom")
			}
			r.Value = json.RawMessage(`{"v":3}`)
			return r, nil
		})
		require.Error(t, err)
		got, err := s.Get("credential", "a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(got.Value))
	})

	t.Run("key change rejected", func(t *testing.T) {
		_, err := s.Resave("credential", func(r Record) (Record, error) {
			r.ID = "other"
			return r, nil
		})
		assert.True(t, cerrdefs.IsInvalidArgument(err))
	})
}

func TestPutAll(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Put(Record{Type: "credential", ID: "a", Value: json.RawMessage(`{"v":1}`)}))

	err := s.PutAll(
		Record{Type: "credential", ID: "a", Value: json.RawMessage(`{"v":2}`)},
		Record{Type: "credential"},
	)
	assert.True(t, cerrdefs.IsInvalidArgument(err))
	got, err := s.Get("credential", "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(got.Value))

	require.NoError(t, s.PutAll(
		Record{Type: "credential", ID: "a", Value: json.RawMessage(`{"v":2}`)},
		Record{Type: "presentation", ID: "b", Value: json.RawMessage(`{"v":1}`)},
	))
	got, err = s.Get("credential", "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got.Value))
	_, err = s.Get("presentation", "b")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")
	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.Version()
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.SetVersion("v0.7.2"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, err := s.Version()
	require.NoError(t, err)
	assert.Equal(t, "v0.7.2", v)

	assert.Error(t, s.SetVersion(""))
}
