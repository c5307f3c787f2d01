package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"baduk_arena/internal/domain/game"
	errs "baduk_arena/internal/errors"
)

const (
	mongoTimeout      = 5 * time.Second
	archiveCollection = "games"
)

type ArchivedGame struct {
	game.Session `bson:",inline"`
	SGF          string    `bson:"sgf"`
	ArchivedAt   time.Time `bson:"archived_at"`
}

// ArchiveSession кладёт завершённую партию вместе с SGF в mongo.
// Повторный вызов перезаписывает запись.
func (g *GameRepository) ArchiveSession(ctx context.Context, s game.Session, sgfText string) error {
	if g.mongo == nil {
		g.log.Warnf("archive is not configured, session %s is kept in redis only", s.ID)
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	doc := ArchivedGame{Session: s, SGF: sgfText, ArchivedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	_, err := g.mongo.Collection(archiveCollection).ReplaceOne(ctx, bson.M{"_id": s.ID}, doc, opts)
	if err != nil {
		g.log.Errorf("failed to archive game %s: %v", s.ID, err)
		return fmt.Errorf("archive session %s: %w", s.ID, err)
	}

	g.log.Infof("game %s archived", s.ID)
	return nil
}

func (g *GameRepository) GetArchivedSession(ctx context.Context, id string) (game.Session, error) {
	if g.mongo == nil {
		return game.Session{}, errs.ErrGameNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var doc ArchivedGame
	err := g.mongo.Collection(archiveCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Session{}, errs.ErrGameNotFound
	} else if err != nil {
		g.log.Error(err)
		return game.Session{}, fmt.Errorf("find archived session %s: %w", id, err)
	}
	return doc.Session, nil
}
