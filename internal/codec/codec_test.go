package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemPassThrough(t *testing.T) {
	fs := Filesystem()
	out, err := fs.Encode("dir/häll.sip")
	require.NoError(t, err)
	assert.Equal(t, "dir/häll.sip", out)
}

func TestFilesystemRejectsMalformedInput(t *testing.T) {
	fs := Filesystem()
	_, err := fs.Encode("bad\xff\xfename")
	require.Error(t, err)

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "filesystem", encErr.Codec)
}

func TestLookupCharmapEncodes(t *testing.T) {
	c, err := Lookup("ISO-8859-1")
	require.NoError(t, err)

	out, err := c.Encode("héllo")
	require.NoError(t, err)
	assert.Equal(t, "h\xe9llo", out)
}

func TestLookupCharmapRejectsUnmappable(t *testing.T) {
	c, err := Lookup("ISO-8859-1")
	require.NoError(t, err)

	// The euro sign has no ISO-8859-1 representation.
	_, err = c.Encode("price: €10")
	require.Error(t, err)

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "iso-8859-1", encErr.Codec)
}

func TestLookupUnknownCharset(t *testing.T) {
	_, err := Lookup("no-such-charset")
	assert.Error(t, err)
}

func TestLookupUTF8Aliases(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "utf8"} {
		c, err := Lookup(name)
		require.NoError(t, err, "name %q", name)
		out, err := c.Encode("héllo €")
		require.NoError(t, err)
		assert.Equal(t, "héllo €", out)
	}
}

func TestLocaleRespectsEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		lcAll   string
		lang    string
		input   string
		wantErr bool
	}{
		{name: "utf8 locale passes everything", lcAll: "en_US.UTF-8", input: "tag-€"},
		{name: "C locale passes everything", lcAll: "C", input: "tag-€"},
		{name: "latin1 locale rejects euro", lcAll: "en_US.ISO-8859-1", input: "tag-€", wantErr: true},
		{name: "latin1 via LANG", lang: "de_DE.ISO-8859-1", input: "tag-€", wantErr: true},
		{name: "latin1 accepts latin text", lcAll: "en_US.ISO-8859-1", input: "straße"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LC_ALL", tt.lcAll)
			t.Setenv("LC_CTYPE", "")
			t.Setenv("LANG", tt.lang)

			c := Locale()
			assert.Equal(t, "locale", c.Name())

			_, err := c.Encode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocaleCharsetParsing(t *testing.T) {
	assert.Equal(t, "ISO-8859-1", localeCharset("en_US.ISO-8859-1"))
	assert.Equal(t, "ISO-8859-15", localeCharset("en_US.ISO-8859-15@euro"))
	assert.Equal(t, "", localeCharset("C", "en_US.ISO-8859-1"))
	assert.Equal(t, "UTF-8", localeCharset("", "", "en_US.UTF-8"))
	assert.Equal(t, "", localeCharset("en_US"))
	assert.Equal(t, "", localeCharset())
}
