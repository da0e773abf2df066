package repo

import (
	"github.com/tazhibayda/posts-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deep translation between storage docs and domain values. Every owner in
// the aggregate (post, each comment, each like) is re-shaped, and timestamps
// are normalized to UTC on the way out.

func docToOwner(d ownerDoc) domain.Owner {
	return domain.Owner{
		ID:      d.UserID.Hex(),
		Name:    d.Name,
		Surname: d.Surname,
		Avatar:  d.Avatar,
	}
}

func ownerToDoc(o domain.Owner) (ownerDoc, error) {
	uid, err := primitive.ObjectIDFromHex(o.ID)
	if err != nil {
		return ownerDoc{}, err
	}
	return ownerDoc{UserID: uid, Name: o.Name, Surname: o.Surname, Avatar: o.Avatar}, nil
}

func docToComment(d *commentDoc) domain.Comment {
	return domain.Comment{
		ID:        d.ID.Hex(),
		Body:      d.Body,
		Owner:     docToOwner(d.Owner),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func commentToDoc(c domain.Comment) (commentDoc, error) {
	owner, err := ownerToDoc(c.Owner)
	if err != nil {
		return commentDoc{}, err
	}
	doc := commentDoc{
		Body:      c.Body,
		Owner:     owner,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
	if c.ID != "" {
		cid, err := primitive.ObjectIDFromHex(c.ID)
		if err != nil {
			return commentDoc{}, err
		}
		doc.ID = cid
	}
	return doc, nil
}

func docToLike(d *likeDoc) domain.Like {
	return domain.Like{
		Owner:     docToOwner(d.Owner),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func likeToDoc(l domain.Like) (likeDoc, error) {
	owner, err := ownerToDoc(l.Owner)
	if err != nil {
		return likeDoc{}, err
	}
	return likeDoc{Owner: owner, CreatedAt: l.CreatedAt.UTC(), UpdatedAt: l.UpdatedAt.UTC()}, nil
}

func docToPost(d *postDoc) domain.Post {
	comments := make([]domain.Comment, 0, len(d.Comments))
	for i := range d.Comments {
		comments = append(comments, docToComment(&d.Comments[i]))
	}
	likes := make([]domain.Like, 0, len(d.Likes))
	for i := range d.Likes {
		likes = append(likes, docToLike(&d.Likes[i]))
	}
	return domain.Post{
		ID:        d.ID.Hex(),
		Body:      d.Body,
		Owner:     docToOwner(d.Owner),
		Comments:  comments,
		Likes:     likes,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func postToDoc(p *domain.Post) (*postDoc, error) {
	owner, err := ownerToDoc(p.Owner)
	if err != nil {
		return nil, err
	}
	doc := &postDoc{
		Body:      p.Body,
		Owner:     owner,
		Comments:  []commentDoc{},
		Likes:     []likeDoc{},
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
	for _, c := range p.Comments {
		cd, err := commentToDoc(c)
		if err != nil {
			return nil, err
		}
		doc.Comments = append(doc.Comments, cd)
	}
	for _, l := range p.Likes {
		ld, err := likeToDoc(l)
		if err != nil {
			return nil, err
		}
		doc.Likes = append(doc.Likes, ld)
	}
	if p.ID != "" {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = oid
	}
	return doc, nil
}
