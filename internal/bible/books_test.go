package bible

import "testing"

func TestNormalize_Canonical(t *testing.T) {
	got, ok := Normalize("John")
	if !ok {
		t.Fatal("Normalize(John) not recognized")
	}
	if got != "John" {
		t.Errorf("Normalize(John) = %q, want John", got)
	}
}

func TestNormalize_CaseInsensitive(t *testing.T) {
	got, ok := Normalize("rOmAnS")
	if !ok || got != "Romans" {
		t.Errorf("Normalize(rOmAnS) = %q, %v, want Romans, true", got, ok)
	}
}

func TestNormalize_PsalmAlias(t *testing.T) {
	got, ok := Normalize("Psalm")
	if !ok || got != "Psalms" {
		t.Errorf("Normalize(Psalm) = %q, %v, want Psalms, true", got, ok)
	}
}

func TestNormalize_SongOfSongsAlias(t *testing.T) {
	got, ok := Normalize("Song of Songs")
	if !ok || got != "Song of Solomon" {
		t.Errorf("Normalize(Song of Songs) = %q, %v, want Song of Solomon, true", got, ok)
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got, ok := Normalize("  1   Corinthians ")
	if !ok || got != "1 Corinthians" {
		t.Errorf("Normalize = %q, %v, want 1 Corinthians, true", got, ok)
	}
}

func TestNormalize_UnknownBook(t *testing.T) {
	if _, ok := Normalize("Maccabees"); ok {
		t.Error("Normalize(Maccabees) recognized, want rejection")
	}
}

func TestBookCounts(t *testing.T) {
	if len(OldTestamentBooks) != 39 {
		t.Errorf("OldTestamentBooks has %d entries, want 39", len(OldTestamentBooks))
	}
	if len(NewTestamentBooks) != 27 {
		t.Errorf("NewTestamentBooks has %d entries, want 27", len(NewTestamentBooks))
	}
}

func TestTestamentOf(t *testing.T) {
	if tt, ok := TestamentOf("Genesis"); !ok || tt != OldTestament {
		t.Errorf("TestamentOf(Genesis) = %v, %v", tt, ok)
	}
	if tt, ok := TestamentOf("Revelation"); !ok || tt != NewTestament {
		t.Errorf("TestamentOf(Revelation) = %v, %v", tt, ok)
	}
	if _, ok := TestamentOf("Psalm"); ok {
		t.Error("TestamentOf should only accept canonical names")
	}
}

func TestAllNames_IncludesAliases(t *testing.T) {
	names := AllNames()
	if len(names) != 66+len(Aliases) {
		t.Fatalf("AllNames returned %d names, want %d", len(names), 66+len(Aliases))
	}
	found := false
	for _, n := range names {
		if n == "psalm" {
			found = true
		}
	}
	if !found {
		t.Error("AllNames missing psalm alias")
	}
}
