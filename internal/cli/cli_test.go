package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"eventeditor/internal/adapters/auth"
	"eventeditor/internal/domain"
	"eventeditor/internal/notify"
	"eventeditor/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	events    []domain.Event
	fetchErr  error
	removeErr error
	created   []domain.Draft
	removed   []int64
}

func (f *fakeAPI) FetchAll(context.Context) ([]domain.Event, error) {
	return f.events, f.fetchErr
}

func (f *fakeAPI) Create(_ context.Context, d domain.Draft) (domain.Event, error) {
	f.created = append(f.created, d)
	return domain.NewEvent(7, d), nil
}

func (f *fakeAPI) Remove(_ context.Context, id int64) error {
	f.removed = append(f.removed, id)
	return f.removeErr
}

type harness struct {
	app      *App
	out, err *bytes.Buffer
}

func newHarness(api *fakeAPI, stdin string) harness {
	var out, errOut bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reporter := notify.NewReporter(logger, notify.WriterSink{Out: &out, Err: &errOut})
	return harness{
		app: &App{
			Editor: services.NewEditor(api, reporter, logger),
			Hasher: auth.NewBcryptHasher(4),
			In:     strings.NewReader(stdin),
			Out:    &out,
			Err:    &errOut,
		},
		out: &out,
		err: &errOut,
	}
}

func TestApp_List(t *testing.T) {
	api := &fakeAPI{events: []domain.Event{
		{ID: 1, EventDate: "2023-01-01", EventType: "Talk", Title: "Old"},
		{ID: 2, EventDate: "2024-05-05", EventType: "Workshop", Title: "日本語のタイトル", Published: true},
	}}
	h := newHarness(api, "")

	require.NoError(t, h.app.Run(context.Background(), []string{"list"}))
	lines := strings.Split(strings.TrimRight(h.out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID  DATE"))
	assert.True(t, strings.HasPrefix(lines[1], "2   2024-05-05"), lines[1])
	assert.Contains(t, lines[2], "Old")
}

func TestApp_ListFailure(t *testing.T) {
	h := newHarness(&fakeAPI{fetchErr: errors.New("boom")}, "")

	err := h.app.Run(context.Background(), []string{"list"})
	require.Error(t, err)
	assert.Contains(t, h.err.String(), domain.MsgFailure)
}

func TestApp_Show(t *testing.T) {
	api := &fakeAPI{events: []domain.Event{{ID: 4, Title: "Found", Speaker: "Ana", Host: "Ben"}}}

	h := newHarness(api, "")
	require.NoError(t, h.app.Run(context.Background(), []string{"show", "4"}))
	assert.Contains(t, h.out.String(), "Found")
	assert.Contains(t, h.out.String(), "Ana")

	h = newHarness(api, "")
	err := h.app.Run(context.Background(), []string{"show", "5"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, h.err.String(), "Event not found")

	h = newHarness(api, "")
	assert.ErrorIs(t, h.app.Run(context.Background(), []string{"show", "x"}), ErrUsage)
}

func TestApp_New(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		api := &fakeAPI{}
		h := newHarness(api, "")
		err := h.app.Run(context.Background(), []string{"new",
			"--type", "Symposium", "--date", "2024-01-01", "--title", "T", "--speaker", "S", "--host", "H", "--published"})
		require.NoError(t, err)
		require.Len(t, api.created, 1)
		assert.True(t, api.created[0].Published)
		assert.Contains(t, h.out.String(), domain.MsgEventAdded)
		assert.Contains(t, h.out.String(), "/events/7")
	})

	t.Run("invalid never calls the api", func(t *testing.T) {
		api := &fakeAPI{}
		h := newHarness(api, "")
		err := h.app.Run(context.Background(), []string{"new", "--type", "Symposium", "--date", "2024-02-30"})
		var verrs domain.ValidationError
		require.ErrorAs(t, err, &verrs)
		assert.Empty(t, api.created)
		assert.Contains(t, h.err.String(), domain.MsgEventDateInvalid)
		assert.Contains(t, h.err.String(), domain.MsgTitleRequired)
	})
}

func TestApp_Delete(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		stdin       string
		wantRemoved []int64
		wantOut     string
	}{
		{"confirmed at prompt", []string{"delete", "3"}, "y\n", []int64{3}, domain.MsgEventDeleted},
		{"declined at prompt", []string{"delete", "3"}, "n\n", nil, "Cancelled"},
		{"no answer", []string{"delete", "3"}, "", nil, "Cancelled"},
		{"yes flag skips prompt", []string{"delete", "--yes", "3"}, "", []int64{3}, domain.MsgEventDeleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			h := newHarness(api, tt.stdin)
			require.NoError(t, h.app.Run(context.Background(), tt.args))
			assert.Equal(t, tt.wantRemoved, api.removed)
			assert.Contains(t, h.out.String(), tt.wantOut)
		})
	}
}

func TestApp_Usage(t *testing.T) {
	h := newHarness(&fakeAPI{}, "")
	assert.ErrorIs(t, h.app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, h.app.Run(context.Background(), []string{"frobnicate"}), ErrUsage)
	assert.Contains(t, h.err.String(), "usage: eventsctl")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, []string{"A", "B"}, [][]string{{"漢字", "x"}, {"abcdef", "y"}}))
	assert.Equal(t, "A       B\n漢字    x\nabcdef  y\n", buf.String())
}

func TestApp_HashPassword(t *testing.T) {
	h := newHarness(&fakeAPI{}, "s3cret\n")
	require.NoError(t, h.app.Run(context.Background(), []string{"hash-password"}))

	hash := strings.TrimSpace(h.out.String())
	require.NotEmpty(t, hash)
	assert.NoError(t, auth.NewBcryptHasher(0).Compare(hash, "s3cret"))

	h = newHarness(&fakeAPI{}, "\n")
	assert.ErrorIs(t, h.app.Run(context.Background(), []string{"hash-password"}), ErrUsage)
}
