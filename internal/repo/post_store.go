package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storage shape of the post aggregate. Owners are kept as a user reference
// plus the profile snapshot taken at creation time. All mutations of the
// embedded arrays go through single atomic update documents so concurrent
// writers on the same post never race a whole-document rewrite.

type ownerDoc struct {
	UserID  primitive.ObjectID `bson:"user_id"`
	Name    string             `bson:"name"`
	Surname string             `bson:"surname"`
	Avatar  string             `bson:"avatar"`
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"id"`
	Body      string             `bson:"body"`
	Owner     ownerDoc           `bson:"owner"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type likeDoc struct {
	Owner     ownerDoc  `bson:"owner"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type postDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Body      string             `bson:"body"`
	Owner     ownerDoc           `bson:"owner"`
	Comments  []commentDoc       `bson:"comments"`
	Likes     []likeDoc          `bson:"likes"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (s *Store) insertPost(ctx context.Context, p *postDoc) (*postDoc, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Comments == nil {
		p.Comments = []commentDoc{}
	}
	if p.Likes == nil {
		p.Likes = []likeDoc{}
	}
	res, err := s.colPosts.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, nil // write did not take effect; caller maps this to a failure
	}
	p.ID = oid
	return p, nil
}

func (s *Store) findAllPosts(ctx context.Context) ([]postDoc, error) {
	cur, err := s.colPosts.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []postDoc
	for cur.Next(ctx) {
		var p postDoc
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

func (s *Store) findPostByID(ctx context.Context, id primitive.ObjectID) (*postDoc, error) {
	var p postDoc
	err := s.colPosts.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// deletePostByID removes the whole document, embedded comments and likes
// included. Deleting an absent post is a no-op.
func (s *Store) deletePostByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.colPosts.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// pushComment appends the comment atomically and returns the updated post,
// so the caller observes the assigned comment id without a second read.
func (s *Store) pushComment(ctx context.Context, postID primitive.ObjectID, c commentDoc) (*postDoc, error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	return s.pushAndReturn(ctx, postID, bson.M{"comments": c})
}

func (s *Store) pushLike(ctx context.Context, postID primitive.ObjectID, l likeDoc) (*postDoc, error) {
	return s.pushAndReturn(ctx, postID, bson.M{"likes": l})
}

func (s *Store) pushAndReturn(ctx context.Context, postID primitive.ObjectID, push bson.M) (*postDoc, error) {
	var p postDoc
	err := s.colPosts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": push, "$set": bson.M{"updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// findComment reads a single comment via an $elemMatch projection, so a post
// with thousands of comments is not deserialized to answer a one-item read.
// A missing post and a missing comment both come back as absent.
func (s *Store) findComment(ctx context.Context, postID, commentID primitive.ObjectID) (*commentDoc, error) {
	var partial struct {
		Comments []commentDoc `bson:"comments"`
	}
	err := s.colPosts.FindOne(ctx,
		bson.M{"_id": postID, "comments.id": commentID},
		options.FindOne().SetProjection(bson.M{
			"comments": bson.M{"$elemMatch": bson.M{"id": commentID}},
		}),
	).Decode(&partial)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(partial.Comments) == 0 {
		return nil, nil
	}
	return &partial.Comments[0], nil
}

func (s *Store) findLikeByOwnerID(ctx context.Context, postID, ownerID primitive.ObjectID) (*likeDoc, error) {
	var partial struct {
		Likes []likeDoc `bson:"likes"`
	}
	err := s.colPosts.FindOne(ctx,
		bson.M{"_id": postID, "likes.owner.user_id": ownerID},
		options.FindOne().SetProjection(bson.M{
			"likes": bson.M{"$elemMatch": bson.M{"owner.user_id": ownerID}},
		}),
	).Decode(&partial)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(partial.Likes) == 0 {
		return nil, nil
	}
	return &partial.Likes[0], nil
}

// pullComment removes the matching comment atomically; absent post or
// comment is a no-op.
func (s *Store) pullComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	return s.pull(ctx,
		bson.M{"_id": postID, "comments.id": commentID},
		bson.M{"comments": bson.M{"id": commentID}},
	)
}

func (s *Store) pullLikeByOwnerID(ctx context.Context, postID, ownerID primitive.ObjectID) error {
	return s.pull(ctx,
		bson.M{"_id": postID, "likes.owner.user_id": ownerID},
		bson.M{"likes": bson.M{"owner.user_id": ownerID}},
	)
}

// pull's filter matches the array element too, so a remove that finds
// nothing leaves the document untouched, updated_at included.
func (s *Store) pull(ctx context.Context, filter, pull bson.M) error {
	_, err := s.colPosts.UpdateOne(ctx,
		filter,
		bson.M{"$pull": pull, "$set": bson.M{"updated_at": time.Now().UTC()}},
	)
	return err
}
