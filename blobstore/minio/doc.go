// Package minio reads catalog files from MinIO and other S3-compatible
// services (Ceph, SeaweedFS, Garage) with the MinIO client.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "catalogs", "release-7/")
//	loader := catalog.NewLoader(store, cat)
//
// Whole files are fetched with a single streaming GET; ReadAt issues ranged
// GETs.
package minio
