package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Author    string    `json:"author" bson:"author"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Tags      []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	Upvotes   int       `json:"upvotes" bson:"-"`
	Replies   []Reply   `json:"replies,omitempty" bson:"-"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Reply struct {
	ID        string    `json:"id" bson:"_id"`
	PostID    string    `json:"post_id" bson:"post_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Author    string    `json:"author" bson:"author"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type CreateReplyRequest struct {
	Content string `json:"content"`
}

func (r *CreatePostRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Title is required"
	} else if len(r.Title) > 200 {
		errors["title"] = "Title is too long"
	}
	if r.Content == "" {
		errors["content"] = "Content is required"
	} else if len(r.Content) > 10000 {
		errors["content"] = "Content is too long"
	}
	if len(r.Tags) > 5 {
		errors["tags"] = "At most 5 tags are allowed"
	}

	return errors
}

func (r *CreateReplyRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Content == "" {
		errors["content"] = "Content is required"
	} else if len(r.Content) > 5000 {
		errors["content"] = "Content is too long"
	}

	return errors
}
