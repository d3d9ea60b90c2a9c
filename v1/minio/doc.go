// Package minio stores configuration documents and workbooks in
// MinIO/S3-compatible object storage.
//
// The client is deliberately small: Put, Get, Stat and Delete against one
// configured bucket. Missing objects are reported as ErrObjectNotFound so the
// configsource package can treat a missing configuration document as "no
// configuration".
//
// # Direct Usage (Without FX)
//
//	client, err := minio.NewClient(minio.Config{
//		Connection: minio.ConnectionConfig{
//			Endpoint:             "localhost:9000",
//			AccessKeyID:          "minio_admin",
//			SecretAccessKey:      "minio_admin",
//			BucketName:           "sheetmap",
//			AccessBucketCreation: true,
//		},
//	})
//	if err != nil {
//		return err
//	}
//	client = client.WithLogger(log).WithObserver(m)
//
//	data, err := client.Get(ctx, "config/msio.json")
//	if minio.IsObjectNotFound(err) {
//		// no document stored yet
//	}
//
// # Observability
//
// With an observer attached every operation reports component "minio",
// operation put|get|stat|delete, the bucket as resource and the object key as
// sub-resource.
package minio
