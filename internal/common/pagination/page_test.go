package pagination_test

import (
	"bytes"
	"log/slog"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarbmont89/full-congreso-sub000/internal/common/pagination"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

func TestFromRequest(t *testing.T) {
	cfg := pagination.Config{DefaultLimit: 20, MaxLimit: 50}

	tests := []struct {
		name    string
		query   string
		want    pagination.Params
		wantErr string
	}{
		{name: "defaults", query: "", want: pagination.Params{Page: 1, Limit: 20}},
		{name: "explicit", query: "page=3&limit=10", want: pagination.Params{Page: 3, Limit: 10}},
		{name: "limit at max", query: "limit=50", want: pagination.Params{Page: 1, Limit: 50}},
		{name: "zero page", query: "page=0", wantErr: "page"},
		{name: "text page", query: "page=two", wantErr: "page"},
		{name: "last page", query: "page=2147483647&limit=50", want: pagination.Params{Page: pagination.MaxPage, Limit: 50}},
		{name: "page past max", query: "page=2147483648", wantErr: "page"},
		{name: "page overflows offset", query: "page=9223372036854775807&limit=50", wantErr: "page"},
		{name: "page beyond int", query: "page=99999999999999999999", wantErr: "page"},
		{name: "limit above max", query: "limit=51", wantErr: "limit"},
		{name: "negative limit", query: "limit=-1", wantErr: "limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pagination.FromRequest(httptest.NewRequest("GET", "/api/news?"+tt.query, nil), cfg)
			if tt.wantErr != "" {
				var ve *entity.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantErr, ve.Field)
				assert.Contains(t, ve.Message, "invalid")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_Normalize(t *testing.T) {
	cfg := pagination.DefaultConfig()

	assert.Equal(t, pagination.Params{Page: 1, Limit: 20}, pagination.Params{}.Normalize(cfg))
	assert.Equal(t, pagination.Params{Page: 4, Limit: 100}, pagination.Params{Page: 4, Limit: 900}.Normalize(cfg))
	assert.Equal(t, pagination.Params{Page: 2, Limit: 5}, pagination.Params{Page: 2, Limit: 5}.Normalize(cfg))

	huge := pagination.Params{Page: math.MaxInt, Limit: 100}.Normalize(cfg)
	assert.Equal(t, pagination.MaxPage, huge.Page)
	assert.GreaterOrEqual(t, huge.Offset(), 0)
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 90, pagination.Params{Page: 10, Limit: 10}.Offset())
}

func TestNewMetadata(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		pages int
	}{
		{total: 0, limit: 20, pages: 1},
		{total: 19, limit: 20, pages: 1},
		{total: 20, limit: 20, pages: 1},
		{total: 21, limit: 20, pages: 2},
		{total: 41, limit: 20, pages: 3},
	}
	for _, tt := range tests {
		meta := pagination.NewMetadata(pagination.Params{Page: 1, Limit: tt.limit}, tt.total)
		assert.Equal(t, tt.pages, meta.TotalPages, "total %d", tt.total)
		assert.Equal(t, tt.total, meta.Total)
	}
}

func TestNewResponse_NilDataIsEmpty(t *testing.T) {
	resp := pagination.NewResponse[int](nil, pagination.Metadata{Page: 1, Limit: 20, TotalPages: 1})
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestLoadConfig(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "")
		t.Setenv("PAGINATION_MAX_LIMIT", "")
		assert.Equal(t, pagination.DefaultConfig(), pagination.LoadConfig(slog.Default()))
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "12")
		t.Setenv("PAGINATION_MAX_LIMIT", "60")
		assert.Equal(t, pagination.Config{DefaultLimit: 12, MaxLimit: 60}, pagination.LoadConfig(slog.Default()))
	})

	t.Run("default clamped to max", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "80")
		t.Setenv("PAGINATION_MAX_LIMIT", "50")
		assert.Equal(t, pagination.Config{DefaultLimit: 50, MaxLimit: 50}, pagination.LoadConfig(slog.Default()))
	})

	t.Run("garbage falls back and warns", func(t *testing.T) {
		var buf bytes.Buffer
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "lots")
		t.Setenv("PAGINATION_MAX_LIMIT", "0")

		cfg := pagination.LoadConfig(slog.New(slog.NewTextHandler(&buf, nil)))

		assert.Equal(t, pagination.DefaultConfig(), cfg)
		assert.Contains(t, buf.String(), "pagination setting fell back to default")
	})
}
