package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Nickname string `json:"nickname" firestore:"nickname"`
	Role     string `json:"role" firestore:"role"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
