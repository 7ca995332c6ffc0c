//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

func TestParseProtocol(t *testing.T) {
	t.Parallel()

	t.Run("should accept ssh and https in any casing", func(t *testing.T) {
		for raw, expected := range map[string]entities.Protocol{
			"ssh":    entities.ProtocolSSH,
			"SSH":    entities.ProtocolSSH,
			"https":  entities.ProtocolHTTPS,
			" HTTPS": entities.ProtocolHTTPS,
		} {
			// when
			protocol, err := entities.ParseProtocol(raw)

			// then
			require.NoError(t, err)
			assert.Equal(t, expected, protocol)
		}
	})

	t.Run("should reject anything else", func(t *testing.T) {
		for _, raw := range []string{"", "git", "http", "ftp"} {
			// when
			protocol, err := entities.ParseProtocol(raw)

			// then
			require.Error(t, err)
			assert.Equal(t, entities.ProtocolUnknown, protocol)
		}
	})
}

func TestClassifyRemoteURL(t *testing.T) {
	t.Parallel()

	t.Run("should classify scp-like and ssh scheme URLs as ssh", func(t *testing.T) {
		assert.Equal(t, entities.ProtocolSSH, entities.ClassifyRemoteURL("git@github.com:acme/api.git"))
		assert.Equal(t, entities.ProtocolSSH, entities.ClassifyRemoteURL("ssh://git@github.com/acme/api.git"))
	})

	t.Run("should classify https URLs as https", func(t *testing.T) {
		assert.Equal(t, entities.ProtocolHTTPS, entities.ClassifyRemoteURL("https://github.com/acme/api.git"))
	})

	t.Run("should classify everything else as unknown", func(t *testing.T) {
		for _, url := range []string{"", "http://github.com/acme/api.git", "file:///tmp/api", "/local/path"} {
			assert.Equal(t, entities.ProtocolUnknown, entities.ClassifyRemoteURL(url), "url %q", url)
		}
	})
}

func TestRepositoryInfoURLFor(t *testing.T) {
	t.Parallel()

	// given
	info := entities.RepositoryInfo{
		Name:     "api",
		CloneURL: "https://github.com/acme/api.git",
		SSHURL:   "git@github.com:acme/api.git",
	}

	// when / then
	assert.Equal(t, info.SSHURL, info.URLFor(entities.ProtocolSSH))
	assert.Equal(t, info.CloneURL, info.URLFor(entities.ProtocolHTTPS))
}
