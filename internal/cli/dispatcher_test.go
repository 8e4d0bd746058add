package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardmanager/cardmanage/internal/card"
	"github.com/cardmanager/cardmanage/internal/logger"
)

const testCard = `# test card
imax 1
----
shapes * ch1 ws.root ch1:$PROCESS
----
bin ch1
observation 10
----
bin ch1 ch1
process sig bkg
process 0 1
rate 1.5 10
----
lumi lnN 1.02 1.02
bkg_norm rateParam ch1 bkg 1
`

type writeCall struct {
	card        *card.Card
	destination string
	opts        card.WriteOptions
}

// fakeService records calls instead of touching the filesystem
type fakeService struct {
	loaded  []string
	writes  []writeCall
	compare []string

	loadErr    error
	writeErr   error
	equivalent bool
	compareErr error
}

func (f *fakeService) Load(path string) (*card.Card, error) {
	f.loaded = append(f.loaded, path)
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return card.Parse(path, strings.Split(testCard, "\n"))
}

func (f *fakeService) Write(c *card.Card, destination string, opts card.WriteOptions) error {
	f.writes = append(f.writes, writeCall{card: c, destination: destination, opts: opts})
	return f.writeErr
}

func (f *fakeService) Compare(path1, path2 string) (bool, error) {
	f.compare = append(f.compare, path1, path2)
	return f.equivalent, f.compareErr
}

func newTestDispatcher(svc Service) (*Dispatcher, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(svc, logger.Discard(), out), out
}

func writeCardFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

var errBoom = errors.New("boom")
