package progress

import "context"

// Storage is the durable key/value collaborator. Values are whole JSON blobs
// replaced on every write. A missing key is reported with ok=false, not an
// error.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// JuzResolver maps an ayah to the juz it belongs to.
type JuzResolver interface {
	JuzForAyah(surahNumber, ayahNumber int) int
}
