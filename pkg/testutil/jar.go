package testutil

import (
	"archive/zip"
	"bytes"
	"sort"
	"testing"
)

// CreoleXML is the marker content placed in plugin jars
const CreoleXML = `<?xml version="1.0"?><CREOLE-DIRECTORY></CREOLE-DIRECTORY>`

// Jar builds a zip archive holding files (name -> content)
func Jar(t testing.TB, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s to jar: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write %s to jar: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close jar: %v", err)
	}
	return buf.Bytes()
}

// PluginJar builds a jar with creole.xml at its root
func PluginJar(t testing.TB) []byte {
	t.Helper()
	return Jar(t, map[string]string{
		"creole.xml":           CreoleXML,
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\n",
	})
}

// PlainJar builds a jar without the plugin marker
func PlainJar(t testing.TB) []byte {
	t.Helper()
	return Jar(t, map[string]string{
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\n",
		"resources/creole.xml": CreoleXML,
	})
}

// BrokenJar returns bytes that are not a zip archive
func BrokenJar() []byte {
	return []byte("this is not a jar")
}
