package mongo

import (
	"context"
	"fmt"

	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxCommentsPerPost — верхняя граница выборки для одной шторки.
const maxCommentsPerPost = 500

// ListByPost возвращает комментарии поста в порядке вставки.
func (m *Mongo) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	const op = "storage.mongo.ListByPost"

	if postID <= 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(maxCommentsPerPost)

	cur, err := m.comments.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]models.Comment, 0)
	for cur.Next(ctx) {
		var c models.Comment
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		out = append(out, c)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return out, nil
}

// InsertComments сохраняет комментарии (наполнение тестовых/демо данных).
func (m *Mongo) InsertComments(ctx context.Context, comments []models.Comment) error {
	const op = "storage.mongo.InsertComments"

	if len(comments) == 0 {
		return nil
	}

	docs := make([]any, 0, len(comments))
	for i, c := range comments {
		if c.PostID <= 0 {
			return fmt.Errorf("%s: item %d: %w", op, i, storage.ErrInvalidArgument)
		}
		docs = append(docs, c)
	}

	if _, err := m.comments.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

var _ storage.CommentsStorage = (*Mongo)(nil)
