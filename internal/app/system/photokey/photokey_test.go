package photokey_test

import (
	"strings"
	"testing"

	"github.com/voyagehq/voyagehub/internal/app/system/photokey"
)

func TestNew_KeyShape(t *testing.T) {
	key := photokey.New("Sunset at Kyoto.JPG")

	if !strings.HasPrefix(key, "photos/") {
		t.Errorf("key %q should live under photos/", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key %q should keep the lowercased extension", key)
	}
	if strings.Contains(key, "Sunset") || strings.Contains(key, "Kyoto") {
		t.Errorf("key %q leaks the submitted filename", key)
	}
}

func TestNew_NoExtension(t *testing.T) {
	key := photokey.New("snapshot")
	if strings.Contains(key, ".") {
		t.Errorf("key %q should carry no extension for an extensionless name", key)
	}
}

func TestNew_KeysAreUnique(t *testing.T) {
	if photokey.New("a.png") == photokey.New("a.png") {
		t.Error("two keys for the same filename should differ")
	}
}

func TestNewBatch_PreservesOrderAndCount(t *testing.T) {
	keys := photokey.NewBatch([]string{"one.png", "two.gif"})
	if len(keys) != 2 {
		t.Fatalf("got %d keys, want 2", len(keys))
	}
	if !strings.HasSuffix(keys[0], ".png") || !strings.HasSuffix(keys[1], ".gif") {
		t.Errorf("batch keys %v should keep per-file extensions in order", keys)
	}
}
