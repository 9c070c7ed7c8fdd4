package spf

import (
	"errors"
	"testing"
)

const sampleBulletin = `Prix officiels des produits petroliers
Gasoil de chauffage (H0/H7) livraison de moins de 2000 l l 1,2345 EUR
Gasoil de chauffage (H0/H7) livraison à partir de 2000 l l 1,1000 EUR
Propane en vrac l 0,9000 EUR
`

func TestParseTariffs(t *testing.T) {
	tariffs, err := ParseTariffs(sampleBulletin, 0.02)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tariffs.Standard != 1.2345 {
		t.Fatalf("expected standard 1.2345, got %v", tariffs.Standard)
	}
	if tariffs.Degressive != 1.1000 {
		t.Fatalf("expected degressive 1.1000, got %v", tariffs.Degressive)
	}
	if tariffs.StandardUL != 1.2545 {
		t.Fatalf("expected standard UL 1.2545, got %v", tariffs.StandardUL)
	}
	if tariffs.DegressiveUL != 1.1200 {
		t.Fatalf("expected degressive UL 1.1200, got %v", tariffs.DegressiveUL)
	}
}

func TestParseTariffsSpansLines(t *testing.T) {
	text := "Gasoil de chauffage (H0/H7)\nlivraison de moins de 2000 l l 0,9876\n" +
		"Gasoil de chauffage (H0/H7)\nlivraison à partir de 2000 l l 0,9500\n"
	tariffs, err := ParseTariffs(text, 0.02)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tariffs.Standard != 0.9876 || tariffs.Degressive != 0.95 {
		t.Fatalf("unexpected tariffs %+v", tariffs)
	}
}

func TestParseTariffsNoMatch(t *testing.T) {
	_, err := ParseTariffs("Propane en vrac l 0,9000 EUR", 0.02)
	if !errors.Is(err, ErrNoTariffs) {
		t.Fatalf("expected ErrNoTariffs, got %v", err)
	}
}

func TestParseTariffsIdempotent(t *testing.T) {
	first, err := ParseTariffs(sampleBulletin, 0.02)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second, err := ParseTariffs(sampleBulletin, 0.02)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical tariffs, got %+v and %+v", first, second)
	}
}
