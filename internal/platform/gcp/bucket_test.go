package gcp

import "testing"

func TestKeyFromPublicURL(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		ref     string
		wantKey string
		wantOK  bool
	}{
		{
			name:    "gcs public url",
			bucket:  "studymind-files",
			ref:     "https://storage.googleapis.com/studymind-files/u1/file.pdf",
			wantKey: "u1/file.pdf",
			wantOK:  true,
		},
		{
			name:    "nested key keeps full path",
			bucket:  "BUCKET",
			ref:     "https://host/BUCKET/abc/def.pdf",
			wantKey: "abc/def.pdf",
			wantOK:  true,
		},
		{
			name:   "bucket segment absent",
			bucket: "BUCKET",
			ref:    "https://elsewhere.example/other/abc.pdf",
			wantOK: false,
		},
		{
			name:   "bucket name as bare substring does not match",
			bucket: "BUCKET",
			ref:    "https://host/BUCKETx/abc.pdf",
			wantOK: false,
		},
		{
			name:   "empty reference",
			bucket: "BUCKET",
			ref:    "",
			wantOK: false,
		},
		{
			name:   "segment at end yields no key",
			bucket: "BUCKET",
			ref:    "https://host/BUCKET/",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := KeyFromPublicURL(tt.bucket, tt.ref)
			if ok != tt.wantOK {
				t.Fatalf("ok: want=%v got=%v", tt.wantOK, ok)
			}
			if ok && key != tt.wantKey {
				t.Fatalf("key: want=%q got=%q", tt.wantKey, key)
			}
		})
	}
}
