package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadString(t *testing.T) {
	t.Run("unset uses default silently", func(t *testing.T) {
		r := LoadString("CMS_TEST_CRON", "*/30 * * * *", ValidateCronSchedule)
		assert.Equal(t, "*/30 * * * *", r.Value)
		assert.False(t, r.FallbackApplied)
		assert.Empty(t, r.Warning)
	})

	t.Run("blank uses default silently", func(t *testing.T) {
		t.Setenv("CMS_TEST_CRON", "   ")
		r := LoadString("CMS_TEST_CRON", "*/30 * * * *", ValidateCronSchedule)
		assert.Equal(t, "*/30 * * * *", r.Value)
		assert.False(t, r.FallbackApplied)
	})

	t.Run("valid value", func(t *testing.T) {
		t.Setenv("CMS_TEST_CRON", "0 6 * * *")
		r := LoadString("CMS_TEST_CRON", "*/30 * * * *", ValidateCronSchedule)
		assert.Equal(t, "0 6 * * *", r.Value)
		assert.False(t, r.FallbackApplied)
	})

	t.Run("invalid value falls back", func(t *testing.T) {
		t.Setenv("CMS_TEST_CRON", "every minute")
		r := LoadString("CMS_TEST_CRON", "*/30 * * * *", ValidateCronSchedule)
		assert.Equal(t, "*/30 * * * *", r.Value)
		assert.True(t, r.FallbackApplied)
		assert.Contains(t, r.Warning, "CMS_TEST_CRON")
		assert.Contains(t, r.Warning, "every minute")
	})

	t.Run("nil validator accepts anything", func(t *testing.T) {
		t.Setenv("CMS_TEST_STRING", "anything")
		r := LoadString("CMS_TEST_STRING", "x", nil)
		assert.Equal(t, "anything", r.Value)
	})
}

func TestLoadInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		want     int
		fallback bool
	}{
		{"in range", "8", 8, false},
		{"not a number", "eight", 4, true},
		{"below range", "0", 4, true},
		{"above range", "17", 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CMS_TEST_INT", tt.value)
			r := LoadInt("CMS_TEST_INT", 4, IntRange(1, 16))
			assert.Equal(t, tt.want, r.Value)
			assert.Equal(t, tt.fallback, r.FallbackApplied)
		})
	}
}

func TestLoadDuration(t *testing.T) {
	t.Setenv("CMS_TEST_TIMEOUT", "2h")
	r := LoadDuration("CMS_TEST_TIMEOUT", 10*time.Minute, DurationRange(time.Minute, time.Hour))
	assert.Equal(t, 10*time.Minute, r.Value)
	assert.True(t, r.FallbackApplied)

	t.Setenv("CMS_TEST_TIMEOUT", "15m")
	r = LoadDuration("CMS_TEST_TIMEOUT", 10*time.Minute, DurationRange(time.Minute, time.Hour))
	assert.Equal(t, 15*time.Minute, r.Value)
	assert.False(t, r.FallbackApplied)

	t.Setenv("CMS_TEST_TIMEOUT", "15")
	r = LoadDuration("CMS_TEST_TIMEOUT", 10*time.Minute, nil)
	assert.True(t, r.FallbackApplied, "a bare number has no unit")
}

func TestLoadBool(t *testing.T) {
	t.Setenv("CMS_TEST_BOOL", "true")
	assert.True(t, LoadBool("CMS_TEST_BOOL", false).Value)

	t.Setenv("CMS_TEST_BOOL", "yes")
	r := LoadBool("CMS_TEST_BOOL", false)
	assert.False(t, r.Value)
	assert.True(t, r.FallbackApplied)
}
