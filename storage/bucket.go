package storage

import "catalog/config"

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// Bucket describes where uploaded files live
type Bucket struct {
	Name        string
	StorageType StorageType
	Path        string // Path on a drive or a prefix in a S3 bucket
	Region      string
	Endpoint    string
	S3Key       string
	S3Secret    string
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

// BucketFromConfig uses S3 when S3_BUCKET is configured, the UPLOAD_DIR directory otherwise
func BucketFromConfig() Bucket {
	if config.S3_BUCKET != "" {
		return Bucket{
			Name:        config.S3_BUCKET,
			StorageType: StorageTypeS3,
			Path:        config.S3_PREFIX,
			Region:      config.S3_REGION,
			Endpoint:    config.S3_ENDPOINT,
			S3Key:       config.S3_KEY,
			S3Secret:    config.S3_SECRET,
		}
	}
	return Bucket{
		Name:        "uploads",
		StorageType: StorageTypeFile,
		Path:        config.UPLOAD_DIR,
	}
}
