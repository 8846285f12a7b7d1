package kafka

import "testing"

func TestWriterForReusesWriter(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}
	defer p.Close()

	w1 := p.writerFor("zombiescan.events")
	w2 := p.writerFor("zombiescan.events")
	if w1 != w2 {
		t.Error("expected the same writer for repeated topic lookups")
	}

	w3 := p.writerFor("zombiescan.other")
	if w3 == w1 {
		t.Error("expected distinct writers per topic")
	}
}

func TestCloseResetsWriters(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}

	_ = p.writerFor("zombiescan.events")
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	p.mu.Lock()
	n := len(p.writers)
	p.mu.Unlock()
	if n != 0 {
		t.Errorf("writers map length after Close = %d, want 0", n)
	}
}

func TestNewProducerTransport(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:       []string{"localhost:9092"},
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "SCRAM-SHA-512",
		SASLUsername:  "svc",
		SASLPassword:  "secret",
	})
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}
	defer p.Close()

	if p.transport == nil || p.transport.TLS == nil || p.transport.SASL == nil {
		t.Error("expected transport with TLS and SASL configured")
	}

	w := p.writerFor("zombiescan.events")
	if w.Transport != p.transport {
		t.Error("expected writer to use the shared transport")
	}
}

func TestNewProducerRejectsUnknownMechanism(t *testing.T) {
	_, err := NewProducer(Config{
		Brokers:       []string{"localhost:9092"},
		SASLEnabled:   true,
		SASLMechanism: "GSSAPI",
	})
	if err == nil {
		t.Fatal("expected error for unsupported SASL mechanism")
	}
}
