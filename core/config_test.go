package core

import (
	"net/mail"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("TEST env", func(t *testing.T) {
		t.Setenv("ENV", "test")
		t.Setenv("TEST_CATALOG_DATADIR", "/srv/labhub/data")
		t.Setenv("TEST_EMAIL_MAINTAINERS", "ada@uni.test,grace@uni.test")
		t.Setenv("TEST_LLM_TIMEOUT", "5s")

		conf, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "TEST", conf.Env)
		assert.True(t, conf.TestMode)
		assert.True(t, conf.Debug)
		assert.Equal(t, "/srv/labhub/data", conf.Catalog.DataDir)
		assert.Equal(t, 1, conf.Catalog.DefaultYear)
		assert.Equal(t, 5*time.Second, conf.LLM.Timeout)
		assert.Equal(t, []string{"ada@uni.test", "grace@uni.test"}, conf.Email.Maintainers)
		assert.Equal(t, ":8000", conf.Server.Address)
	})

	t.Run("PROD env", func(t *testing.T) {
		t.Setenv("ENV", "PROD")

		conf, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "PROD", conf.Env)
		assert.False(t, conf.Debug)
		assert.False(t, conf.TestMode)
		assert.Equal(t, "google", conf.LLM.Provider)
	})
}

func TestConfig_emails(t *testing.T) {
	conf := NewTestConfig()
	assert.Equal(t, mail.Address{Name: "LabHub", Address: "noreply@localhost"}, conf.DefaultFromEmail())

	conf.Email.DefaultFrom = "not an address"
	assert.Equal(t, mail.Address{Name: "LabHub", Address: "not an address"}, conf.DefaultFromEmail())

	conf.Email.Maintainers = []string{" Ada <ada@uni.test> ", "nope", "grace@uni.test"}
	assert.Equal(t, []mail.Address{
		{Name: "Ada", Address: "ada@uni.test"},
		{Address: "grace@uni.test"},
	}, conf.MaintainerEmails())
}
