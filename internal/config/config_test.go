package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnvFile(t *testing.T) {
	t.Setenv("RISEHUNT_TEST_A", "")
	t.Setenv("RISEHUNT_TEST_B", "")
	t.Setenv("RISEHUNT_TEST_C", "")
	t.Setenv("RISEHUNT_TEST_D", "untouched")

	// A value well past any read-buffer size must survive intact.
	long := strings.Repeat("x", 8192)
	input := strings.Join([]string{
		"# comment",
		"",
		"RISEHUNT_TEST_A=plain",
		"RISEHUNT_TEST_B=" + long,
		"RISEHUNT_TEST_C=a=b=c",
		"not-a-pair",
	}, "\n")

	assert.NoError(t, applyEnvFile(strings.NewReader(input)))
	assert.Equal(t, "plain", os.Getenv("RISEHUNT_TEST_A"))
	assert.Equal(t, long, os.Getenv("RISEHUNT_TEST_B"))
	assert.Equal(t, "a=b=c", os.Getenv("RISEHUNT_TEST_C"))
	assert.Equal(t, "untouched", os.Getenv("RISEHUNT_TEST_D"))
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Env: "development", DBType: "file",
		FileUsers: "u.json", FileJournal: "j.json", FileGoals: "g.json",
		RetentionDays: 30,
	}
	assert.NoError(t, valid.Validate())

	noDSN := *valid
	noDSN.DBType = "postgres"
	assert.Error(t, noDSN.Validate())

	badEnv := *valid
	badEnv.Env = "prod"
	assert.Error(t, badEnv.Validate())

	noSecret := *valid
	noSecret.Env = "production"
	assert.Error(t, noSecret.Validate())

	withSecret := noSecret
	withSecret.WebhookSecret = "s3cret"
	assert.NoError(t, withSecret.Validate())

	badRetention := *valid
	badRetention.RetentionDays = 0
	assert.Error(t, badRetention.Validate())
}
