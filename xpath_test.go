package scrapling

import "testing"

func TestXpathElementSelection(t *testing.T) {
	root := parseTest(t, `<ul><li>1</li><li>2</li></ul>`)
	r, err := root.Xpath("//li")
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != KindElements || r.Len() != 2 {
		t.Fatalf("got %+v, want 2 elements", r)
	}
}

func TestXpathTextNodes(t *testing.T) {
	root := parseTest(t, `<li>hello</li>`)
	r, err := root.Xpath("//li/text()")
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != KindStrings || r.Len() != 1 {
		t.Fatalf("got %+v, want 1 text result", r)
	}
	if r.Texts[0].String() != "hello" {
		t.Errorf("got %q, want hello", r.Texts[0])
	}
}

func TestXpathAttribute(t *testing.T) {
	root := parseTest(t, `<a href="/x">hi</a>`)
	r, err := root.Xpath("//a/@href")
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != KindStrings || r.Texts[0].String() != "/x" {
		t.Fatalf("got %+v, want /x", r)
	}
}

func TestXpathCount(t *testing.T) {
	root := parseTest(t, `<ul><li>1</li><li>2</li><li>3</li></ul>`)
	r, err := root.Xpath("count(//li)")
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != KindStrings || r.Texts[0].String() != "3" {
		t.Fatalf("got %+v, want 3", r)
	}
}

func TestXpathInvalidExpression(t *testing.T) {
	root := parseTest(t, `<p>x</p>`)
	_, err := root.Xpath("//[")
	if err == nil {
		t.Fatal("expected an error for an invalid xpath expression")
	}
}

func TestXpathFirst(t *testing.T) {
	root := parseTest(t, `<ul><li>1</li><li>2</li></ul>`)
	v, err := root.XpathFirst("//li")
	if err != nil {
		t.Fatal(err)
	}
	sel, ok := v.(Selector)
	if !ok {
		t.Fatalf("got %T, want Selector", v)
	}
	if sel.Text().String() != "1" {
		t.Errorf("got %q, want 1", sel.Text())
	}
}
