package storage

import (
	"fmt"
	"io"
	"log"
	"net/http"
)

type StorageAPI interface {
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	// Serve writes the file to the response, or redirects to it for remote storage
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	GetFreeSpace() uint64
	GetBucket() *Bucket
}

var (
	defaultStorage StorageAPI
)

func Init() error {
	bucket := BucketFromConfig()
	s, err := NewStorage(&bucket)
	if err != nil {
		return err
	}
	log.Printf("Storage Bucket: %s (type %d, path %s)", bucket.Name, bucket.StorageType, bucket.Path)
	SetDefaultStorage(s)
	return nil
}

func NewStorage(bucket *Bucket) (StorageAPI, error) {
	switch bucket.StorageType {
	case StorageTypeFile:
		s, err := NewDiskStorage(bucket)
		if err != nil {
			return nil, err
		}
		return s, nil
	case StorageTypeS3:
		s, err := NewS3Storage(bucket)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("storage type unavailable for bucket %s", bucket.Name)
}

func SetDefaultStorage(s StorageAPI) {
	defaultStorage = s
}

func GetDefaultStorage() StorageAPI {
	if defaultStorage == nil {
		panic("no storage available")
	}
	return defaultStorage
}
