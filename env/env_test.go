package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
)

type EnvTestSuite struct {
	suite.Suite
}

func (s *EnvTestSuite) TestDefaults() {

	config, err := Load(viper.New())
	s.Require().NoError(err)

	s.Require().Equal(8080, config.Server.Port)
	s.Require().Equal(SourceREST, config.Source)
	s.Require().Equal(500*time.Millisecond, config.Search.Debounce)
	s.Require().Equal(10, config.Search.PageSize)
	s.Require().Equal("AdminToken", config.Auth.CookieName)
	s.Require().Equal("10-M", config.Auth.LoginRate)
	s.Require().False(config.Redis.Enabled)
	s.Require().Empty(config.Auth.Secret)
}

func (s *EnvTestSuite) TestEnvOverride() {

	s.T().Setenv("PEPONI_SERVER_PORT", "9090")
	s.T().Setenv("PEPONI_SOURCE", SourceMongo)
	s.T().Setenv("PEPONI_SEARCH_DEBOUNCE", "250ms")
	s.T().Setenv("PEPONI_REDIS_ENABLED", "true")

	config, err := Load(viper.New())
	s.Require().NoError(err)

	s.Require().Equal(9090, config.Server.Port)
	s.Require().Equal(SourceMongo, config.Source)
	s.Require().Equal(250*time.Millisecond, config.Search.Debounce)
	s.Require().True(config.Redis.Enabled)
}

func (s *EnvTestSuite) TestConfigFile() {

	path := filepath.Join(s.T().TempDir(), "peponi.yaml")
	content := []byte("backend:\n  base_url: https://api.peponi.test\n  retry_count: 2\ncache:\n  ttl: 1m\n")
	s.Require().NoError(os.WriteFile(path, content, 0o600))

	v := viper.New()
	v.SetConfigFile(path)

	config, err := Load(v)
	s.Require().NoError(err)

	s.Require().Equal("https://api.peponi.test", config.Backend.BaseURL)
	s.Require().Equal(2, config.Backend.RetryCount)
	s.Require().Equal(time.Minute, config.Cache.TTL)
	s.Require().Equal(256, config.Cache.Size)
}

func (s *EnvTestSuite) TestBrokenConfigFile() {

	path := filepath.Join(s.T().TempDir(), "broken.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("server: [port"), 0o600))

	v := viper.New()
	v.SetConfigFile(path)

	_, err := Load(v)
	s.Require().Error(err)
}

func TestEnv(t *testing.T) {
	suite.Run(t, new(EnvTestSuite))
}
