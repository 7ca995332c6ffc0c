package entities

import (
	"fmt"
	"strings"
)

// Protocol is the transport used by a Git remote.
type Protocol string

const (
	ProtocolSSH     Protocol = "ssh"
	ProtocolHTTPS   Protocol = "https"
	ProtocolUnknown Protocol = "unknown"
)

// ParseProtocol converts a user-supplied transport name into a Protocol.
// Only the two transports a remote can be rewritten to are accepted.
func ParseProtocol(raw string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ssh":
		return ProtocolSSH, nil
	case "https":
		return ProtocolHTTPS, nil
	default:
		return ProtocolUnknown, fmt.Errorf("unsupported protocol %q (expected ssh or https)", raw)
	}
}

// ClassifyRemoteURL classifies a configured remote URL by its transport.
// URLs like "git@host:owner/repo.git" or "ssh://git@host/owner/repo.git"
// are SSH, "https://host/owner/repo.git" is HTTPS, and anything else
// (including an empty string) is unknown. Unknown is a valid outcome,
// not an error.
func ClassifyRemoteURL(rawURL string) Protocol {
	url := strings.TrimSpace(rawURL)
	switch {
	case strings.HasPrefix(url, "git@"), strings.HasPrefix(url, "ssh://"):
		return ProtocolSSH
	case strings.HasPrefix(url, "https://"):
		return ProtocolHTTPS
	default:
		return ProtocolUnknown
	}
}

// ProtocolMismatch records a repository whose configured remote transport
// disagrees with the transport requested for the current run.
type ProtocolMismatch struct {
	RepoName   string
	CurrentURL string
}
