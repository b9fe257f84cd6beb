package entity

import "time"

// UploadedFile is one file received from the browser. It only lives for the
// duration of the upload request.
type UploadedFile struct {
	Filename     string
	LastModified time.Time
	Data         []byte
}

// SerializedTable is the transport form of a Table kept in the browser's
// session store. The UI treats it as an opaque string.
type SerializedTable string
