package models

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	registerRules(v)
	return v
}

// GormRepo implements the relational repositories (users, categories,
// events, registrations) on top of a pooled GORM handle.
type GormRepo struct {
	db *gorm.DB
}

func GormNewRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{
		db: db,
	}
}

// AutoMigrate creates or updates every relational table the API uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Category{}, &Event{}, &Registration{})
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}
