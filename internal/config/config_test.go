package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets variables LoadConfig reads so the host environment can't leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"MODVER_PROPERTIES_FILE", "MODVER_FORGE_VERSION", "MODVER_MC_VERSION",
		"MODVER_VERSION_SUFFIX", "MODVER_VERSION_MINOR_FREEZE", "MODVER_BRANCH",
		"GITHUB_HEAD_REF", "MODVER_FETCH_TAGS", "MODVER_LOG_LEVEL", "MODVER_OUTPUT_DIR",
		"MODVER_REPLACE_IN", "MODVER_GIT_CLI",
	} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadConfig(t *testing.T) {
	t.Run("Should read version inputs from gradle.properties", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, dir, "gradle.properties", `forgeVersion=1.12.2-14.23.5.2768
versionSuffix=-beta
versionMinorFreeze=3
org.gradle.jvmargs=-Xmx3G
`)
		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "1.12.2-14.23.5.2768", cfg.ForgeVersion)
		assert.Equal(t, "1.12.2", cfg.EffectiveMCVersion())
		assert.Equal(t, "-beta", cfg.VersionSuffix)
		assert.Equal(t, "3", cfg.VersionMinorFreeze)
		assert.Equal(t, dir, cfg.ProjectDir)
		assert.Equal(t, "VERSION", cfg.VersionFile)
		assert.Equal(t, DefaultReplaceToken, cfg.ReplaceToken)
		assert.Equal(t, "info", cfg.LogLevel)
	})
	t.Run("Should keep empty minor freeze empty", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, dir, "gradle.properties", "forgeVersion=1.11-13.19.1.2189\nversionMinorFreeze=\nversionSuffix=\n")
		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "", cfg.VersionMinorFreeze)
		assert.Equal(t, "", cfg.VersionSuffix)
	})
	t.Run("Should merge tool settings from .modver.yaml", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, dir, "gradle.properties", "forgeVersion=1.12.2-14.23.5.2768\n")
		writeFile(t, dir, ".modver.yaml", `fetch_tags: true
git_cli: true
replace_in:
  - src/main/java/cubicchunks/CubicChunks.java
log_level: debug
`)
		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.True(t, cfg.FetchTags)
		assert.True(t, cfg.GitCLI)
		assert.Equal(t, []string{"src/main/java/cubicchunks/CubicChunks.java"}, cfg.ReplaceIn)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
	t.Run("Should let environment override properties", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, dir, "gradle.properties", "forgeVersion=1.12.2-14.23.5.2768\nversionSuffix=-beta\n")
		t.Setenv("MODVER_VERSION_SUFFIX", "-rc1")
		t.Setenv("MODVER_MC_VERSION", "1.12")
		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "-rc1", cfg.VersionSuffix)
		assert.Equal(t, "1.12", cfg.EffectiveMCVersion())
	})
	t.Run("Should take branch from GITHUB_HEAD_REF", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, dir, "gradle.properties", "forgeVersion=1.12.2-14.23.5.2768\n")
		t.Setenv("GITHUB_HEAD_REF", "feature/x")
		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "feature/x", cfg.Branch)
	})
	t.Run("Should use custom properties file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, dir, "mod.properties", "mcVersion=1.10.2\n")
		t.Setenv("MODVER_PROPERTIES_FILE", "mod.properties")
		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "1.10.2", cfg.EffectiveMCVersion())
	})
	t.Run("Should skip missing properties file silently", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MODVER_MC_VERSION", "1.12.2")
		var stdlog bytes.Buffer
		log.SetOutput(&stdlog)
		t.Cleanup(func() { log.SetOutput(os.Stderr) })
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "1.12.2", cfg.EffectiveMCVersion())
		assert.Empty(t, stdlog.String())
	})
	t.Run("Should fail without minecraft version", func(t *testing.T) {
		clearEnv(t)
		cfg, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "minecraft version is not set")
		assert.Nil(t, cfg)
	})
	t.Run("Should reject invalid minor freeze", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, dir, "gradle.properties", "forgeVersion=1.12.2-14.23.5.2768\nversionMinorFreeze=three\n")
		_, err := LoadConfig(dir)
		assert.ErrorContains(t, err, "invalid versionMinorFreeze")
	})
}

func TestConfig_EffectiveMCVersion(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "explicit mc version wins", cfg: Config{MCVersion: "1.12", ForgeVersion: "1.11-13.19.1.2189"}, want: "1.12"},
		{name: "derived from forge version", cfg: Config{ForgeVersion: "1.11-13.19.1.2189"}, want: "1.11"},
		{name: "forge version without dash", cfg: Config{ForgeVersion: "1.10.2"}, want: "1.10.2"},
		{name: "nothing set", cfg: Config{}, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cfg.EffectiveMCVersion())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.ForgeVersion = "1.12.2-14.23.5.2768"
		return cfg
	}
	t.Run("Should accept defaults with forge version", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})
	t.Run("Should reject negative minor freeze", func(t *testing.T) {
		cfg := valid()
		cfg.VersionMinorFreeze = "-1"
		assert.ErrorContains(t, cfg.Validate(), "non-negative")
	})
	t.Run("Should reject unknown log level", func(t *testing.T) {
		cfg := valid()
		cfg.LogLevel = "trace"
		assert.ErrorContains(t, cfg.Validate(), "invalid log_level")
	})
	t.Run("Should reject path traversal in output dir", func(t *testing.T) {
		cfg := valid()
		cfg.OutputDir = "../outside"
		assert.ErrorContains(t, cfg.Validate(), "output_dir contains invalid path traversal")
	})
	t.Run("Should reject empty replace token", func(t *testing.T) {
		cfg := valid()
		cfg.ReplaceToken = ""
		assert.ErrorContains(t, cfg.Validate(), "replace_token cannot be empty")
	})
}

func TestConfig_ProjectPath(t *testing.T) {
	cfg := &Config{ProjectDir: filepath.Join("work", "mod")}
	assert.Equal(t, filepath.Join("work", "mod", "VERSION"), cfg.ProjectPath("VERSION"))
	abs := filepath.Join(string(filepath.Separator), "tmp", "VERSION")
	assert.Equal(t, abs, cfg.ProjectPath(abs))
}
