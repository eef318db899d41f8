package models

import "catalog/db"

func Init() error {
	return db.Instance.AutoMigrate(&Image{}, &Album{})
}
