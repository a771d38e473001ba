package nmap

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const sampleOutput = `Starting Nmap 7.94 ( https://nmap.org )
Nmap scan report for scanme.example (192.0.2.10)
Host is up (0.0021s latency).
Not shown: 96 filtered tcp ports (no-response)

PORT    STATE  SERVICE
22/tcp  open   ssh
80/tcp  closed http
443/tcp open   https
junk line without ports
8080/tcp open  http-proxy

Nmap done: 1 IP address (1 host up) scanned in 2.05 seconds
`

func TestParseOpenPorts(t *testing.T) {
	got := ParseOpenPorts(strings.NewReader(sampleOutput))
	assert.Equal(t, []int{22, 443, 8080}, got)
}

func TestParseOpenPortsIgnoresClosedAndMalformed(t *testing.T) {
	out := strings.NewReader(`80/tcp closed http
/tcp open garbage
open tcp but no slash
99999/tcp open bogus
`)
	assert.Empty(t, ParseOpenPorts(out))
}

func TestParseOpenPortsDeduplicatesAndSorts(t *testing.T) {
	out := strings.NewReader(`443/tcp open https
22/tcp open ssh
22/tcp open ssh
`)
	assert.Equal(t, []int{22, 443}, ParseOpenPorts(out))
}

func TestParseOpenPortsEmptyInput(t *testing.T) {
	assert.Empty(t, ParseOpenPorts(strings.NewReader("")))
}

func TestBuildArgs(t *testing.T) {
	assert.Equal(t, []string{"-F", "192.0.2.10"}, buildArgs("192.0.2.10", nil))
	assert.Equal(t,
		[]string{"-p", "22,80,443", "192.0.2.10"},
		buildArgs("192.0.2.10", []int{22, 80, 443}))
}

func TestOpenPortsBinaryMissing(t *testing.T) {
	r := NewRunner("definitely-not-a-real-binary-name", time.Second)
	_, err := r.OpenPorts(context.Background(), "127.0.0.1", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner("", 0)
	assert.Equal(t, "nmap", r.Path)
	assert.Equal(t, 60*time.Second, r.Timeout)
}

func TestRunErrorMessage(t *testing.T) {
	assert.Equal(t, "nmap failed: boom", (&RunError{Stderr: "boom\n"}).Error())
	assert.Equal(t, "nmap exited with an error", (&RunError{}).Error())
}
