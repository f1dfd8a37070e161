package repository

import "context"

// SnapshotRepository persists exactly one game snapshot per game type;
// saving overwrites whatever was there before. The payload is the
// serializer's delimited blob, opaque at this layer.
type SnapshotRepository interface {
	Save(ctx context.Context, gameType, payload string) error
	Load(ctx context.Context, gameType string) (string, error)
	DeleteByType(ctx context.Context, gameType string) error
}
