package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type MediaAsset struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	URL        string        `bson:"url" json:"url"`
	ObjectName string        `bson:"objectName" json:"objectName"`
	FileName   string        `bson:"fileName" json:"fileName"`
	MimeType   string        `bson:"mimeType" json:"mimeType"`
	SizeBytes  int64         `bson:"sizeBytes" json:"sizeBytes"`
	Caption    string        `bson:"caption,omitempty" json:"caption,omitempty"`
	UploadedBy string        `bson:"uploadedBy" json:"uploadedBy"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
}
