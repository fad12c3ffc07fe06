package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"

	"rocketsim/game"
)

func TestFileSink_Append(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := NewFileSink(dir)

	rows := []game.Record{
		{Set: game.StaticDataset, Values: []string{"1.2", "33.0", "1", "-1", "1"}},
		{Set: game.MovingDataset, Values: []string{"50", "200", "312", "1", "455"}},
		{Set: game.StaticDataset, Values: []string{"0.4", "12.5", "-1", "1", "0"}},
	}
	for _, r := range rows {
		if err := s.Append(r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "dataset.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "1.2,33.0,1,-1,1\n0.4,12.5,-1,1,0\n"; string(data) != want {
		t.Errorf("dataset.txt = %q, expected %q", data, want)
	}

	data, err = os.ReadFile(s.Path(game.MovingDataset))
	if err != nil {
		t.Fatal(err)
	}
	if want := "50,200,312,1,455\n"; string(data) != want {
		t.Errorf("movingdataset.txt = %q, expected %q", data, want)
	}
}

func TestFileSink_ConcurrentAppends(t *testing.T) {
	s := NewFileSink(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Append(game.Record{Set: "set", Values: []string{fmt.Sprint(i), "0"}}); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(s.Path("set"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 20 {
		t.Errorf("got %d lines, expected 20", lines)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     game.DatasetConfig
		wantErr bool
	}{
		{"default_backend", game.DatasetConfig{Dir: t.TempDir()}, false},
		{"file", game.DatasetConfig{Backend: "file", Dir: t.TempDir()}, false},
		{"unknown", game.DatasetConfig{Backend: "s3"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if s != nil {
				s.Close()
			}
		})
	}
}

func newTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	appName := fmt.Sprintf("rocketsim_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("gdata storage unavailable: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return m
}

func TestStore_AppendAndRows(t *testing.T) {
	s := NewStore(newTestManager(t))

	rows, err := s.Rows(game.StaticDataset)
	if err != nil || len(rows) != 0 {
		t.Fatalf("empty store Rows() = %v, %v", rows, err)
	}

	for _, label := range []string{"1", "0"} {
		r := game.Record{Set: game.StaticDataset, Values: []string{"1.0", "5.0", "1", "1", label}}
		if err := s.Append(r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	rows, err = s.Rows(game.StaticDataset)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"1.0,5.0,1,1,1", "1.0,5.0,1,1,0"}
	if len(rows) != len(want) || rows[0] != want[0] || rows[1] != want[1] {
		t.Errorf("Rows() = %v, expected %v", rows, want)
	}
}
