package scrapling

import "testing"

func TestFindByTextExactAndPartial(t *testing.T) {
	root := parseTest(t, `<p>Hello World</p><p>Hello</p>`)

	exact, err := root.FindByText("Hello", true, false, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(exact) != 1 || exact[0].GetAllText(WithStrip(true)).String() != "Hello" {
		t.Fatalf("got %v, want exact match on the second <p>", exact)
	}

	partial, err := root.FindByText("Hello", false, false, false, true)
	if err != nil {
		t.Fatal(err)
	}
	// <body>'s combined text ("Hello World\nHello") contains "hello" too,
	// so it matches alongside both paragraphs.
	if len(partial) != 3 {
		t.Fatalf("got %d partial matches, want 3", len(partial))
	}
}

func TestFindByRegexFirstVsAll(t *testing.T) {
	root := parseTest(t, `<p>Price: £51.77</p><p>Price: £10.00</p>`)

	first, err := root.FindByRegex(`£[\d.]+`, true, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 || first[0].Text().String() != "Price: £51.77" {
		t.Fatalf("got %v, want first match only", first)
	}

	all, err := root.FindByRegex(`£[\d.]+`, false, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d, want 2", len(all))
	}
}

func TestFindSimilarExcludesAnchorAndOffCohort(t *testing.T) {
	root := parseTest(t, `<div>
		<article class="product" data-id="1"><h3>A</h3></article>
		<article class="product" data-id="2"><h3>B</h3></article>
		<article class="product" data-id="3"><h3>C</h3></article>
		<article class="ad">Buy now</article>
	</div>`)

	anchor, ok := findFirstByTag(root, "article")
	if !ok {
		t.Fatal("expected an anchor <article>")
	}

	similar := anchor.FindSimilar()
	if len(similar) != 2 {
		t.Fatalf("got %d similar elements, want 2 (3 products minus anchor)", len(similar))
	}
	for _, s := range similar {
		if s.Tag() != "article" || !s.HasClass("product") {
			t.Errorf("got tag=%q classes don't include product", s.Tag())
		}
		if s.Equal(anchor) {
			t.Error("anchor should not appear in its own similar set")
		}
	}
}

func TestFindSimilarIgnoresAdByAttributeDrift(t *testing.T) {
	root := parseTest(t, `<div>
		<article class="product" href="/a">A</article>
		<article class="ad" href="/b">ad</article>
	</div>`)

	anchor, ok := findFirstByTag(root, "article")
	if !ok {
		t.Fatal("expected an anchor <article>")
	}
	similar := anchor.FindSimilar(WithSimilarityThreshold(0.8))
	for _, s := range similar {
		if s.HasClass("ad") {
			t.Error("the ad article should not pass a high similarity threshold")
		}
	}
}
