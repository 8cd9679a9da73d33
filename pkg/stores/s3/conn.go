package s3

import (
	"bytes"
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
)

/*
Conn wraps a minio client bound to a single bucket.
*/
type Conn struct {
	client *minio.Client
	bucket string
}

type ConnOption func(*Conn)

/*
NewConn builds a connection from the viper configuration under store.s3.
The bucket is created if it does not exist yet.
*/
func NewConn(ctx context.Context, options ...ConnOption) (*Conn, error) {
	v := viper.GetViper()

	conn := &Conn{
		bucket: v.GetString("store.s3.bucket"),
	}

	for _, option := range options {
		option(conn)
	}

	if conn.client == nil {
		client, err := minio.New(v.GetString("store.s3.endpoint"), &minio.Options{
			Creds: credentials.NewStaticV4(
				v.GetString("store.s3.accessKey"),
				v.GetString("store.s3.secretKey"),
				"",
			),
			Secure: v.GetBool("store.s3.useSSL"),
		})

		if err != nil {
			return nil, err
		}

		conn.client = client
	}

	exists, err := conn.client.BucketExists(ctx, conn.bucket)

	if err != nil {
		return nil, err
	}

	if !exists {
		log.Info("creating bucket", "bucket", conn.bucket)

		if err := conn.client.MakeBucket(
			ctx, conn.bucket, minio.MakeBucketOptions{},
		); err != nil {
			return nil, err
		}
	}

	return conn, nil
}

// WithClient injects a preconfigured minio client.
func WithClient(client *minio.Client) ConnOption {
	return func(conn *Conn) {
		conn.client = client
	}
}

// WithBucket overrides the configured bucket name.
func WithBucket(bucket string) ConnOption {
	return func(conn *Conn) {
		conn.bucket = bucket
	}
}

func (conn *Conn) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := conn.client.GetObject(
		ctx, conn.bucket, key, minio.GetObjectOptions{},
	)

	if err != nil {
		return nil, err
	}

	defer obj.Close()

	return io.ReadAll(obj)
}

func (conn *Conn) Put(ctx context.Context, key string, data []byte) error {
	_, err := conn.client.PutObject(
		ctx, conn.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)

	return err
}

func (conn *Conn) Remove(ctx context.Context, key string) error {
	return conn.client.RemoveObject(
		ctx, conn.bucket, key, minio.RemoveObjectOptions{},
	)
}
