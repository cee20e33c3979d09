package storage

import "testing"

func TestClientURIs(t *testing.T) {
	c := NewClient(ClientConfig{BaseURL: "https://store.example.com/v1/"})

	got := c.indexURI("2025/26", 3)
	want := "https://store.example.com/v1/index.json?season=2025%2F26&gameweek=3"
	if got != want {
		t.Fatalf("unexpected index uri:\nwant: %s\ngot:  %s", want, got)
	}

	got = c.blobURI("2025-26/gw3/alan shaw.txt")
	want = "https://store.example.com/v1/blobs/2025-26/gw3/alan%20shaw.txt"
	if got != want {
		t.Fatalf("unexpected blob uri:\nwant: %s\ngot:  %s", want, got)
	}
}
