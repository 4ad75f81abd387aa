package browse

import (
	"time"
)

type (
	Item struct {
		OriginalName  string    `json:"originalname"`
		Destination   string    `json:"destination"`
		CreatedDate   time.Time `json:"createddate"`
		ContentLength uint64    `json:"contentlength"`
	}
	Items []Item

	// Home is what the upload page needs to know about the recipient
	// it is about to send files to.
	Home struct {
		Email       string `json:"email"`
		SessionID   string `json:"sessionid"`
		IsActivated bool   `json:"isactivated"`
		IsOwner     bool   `json:"isowner"`
	}
)
