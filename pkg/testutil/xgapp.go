package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// XGapp builds GATE application files for tests
type XGapp struct {
	plugins   []string
	resources []string
}

// NewXGapp starts an empty application
func NewXGapp() *XGapp {
	return &XGapp{}
}

// Builtin adds a $gatehome$plugins/{name}/ plugin
func (x *XGapp) Builtin(name string) *XGapp {
	return x.Directory("$gatehome$plugins/" + name + "/")
}

// Directory adds a URL plugin
func (x *XGapp) Directory(url string) *XGapp {
	x.plugins = append(x.plugins, urlHolder(url, "      "))
	return x
}

// Maven adds a coordinate plugin
func (x *XGapp) Maven(group, artifact, version string) *XGapp {
	x.plugins = append(x.plugins, fmt.Sprintf(`      <gate.creole.Plugin-Maven>
        <group>%s</group>
        <artifact>%s</artifact>
        <version>%s</version>
      </gate.creole.Plugin-Maven>`, group, artifact, version))
	return x
}

// Resource adds an init parameter holding a URL
func (x *XGapp) Resource(param, url string) *XGapp {
	x.resources = append(x.resources, fmt.Sprintf(`              <entry>
                <string>%s</string>
%s
              </entry>`, param, urlHolder(url, "                ")))
	return x
}

// Persistent adds an init parameter holding a creole:// resource reference
func (x *XGapp) Persistent(param, uri string) *XGapp {
	x.resources = append(x.resources, fmt.Sprintf(`              <entry>
                <string>%s</string>
                <gate.util.persistence.PersistenceManager-RRPersistence>
                  <uriString>%s</uriString>
                </gate.util.persistence.PersistenceManager-RRPersistence>
              </entry>`, param, uri))
	return x
}

func urlHolder(url, indent string) string {
	return fmt.Sprintf("%s<gate.util.persistence.PersistenceManager-URLHolder>\n%s  <urlString>%s</urlString>\n%s</gate.util.persistence.PersistenceManager-URLHolder>",
		indent, indent, url, indent)
}

// String renders the application XML
func (x *XGapp) String() string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<gate.util.persistence.GateApplication>
  <urlList class="gate.util.persistence.CollectionPersistence">
    <localList>
` + strings.Join(x.plugins, "\n") + `
    </localList>
    <collectionType>java.util.ArrayList</collectionType>
  </urlList>
  <application class="gate.util.persistence.ConditionalSerialAnalyserControllerPersistence">
    <prList class="gate.util.persistence.CollectionPersistence">
      <localList>
        <gate.util.persistence.LanguageAnalyserPersistence>
          <initParams class="gate.util.persistence.MapPersistence">
            <mapType>gate.util.SimpleFeatureMapImpl</mapType>
            <localMap>
` + strings.Join(x.resources, "\n") + `
            </localMap>
          </initParams>
        </gate.util.persistence.LanguageAnalyserPersistence>
      </localList>
    </prList>
  </application>
</gate.util.persistence.GateApplication>
`
}

// Bytes renders the application XML
func (x *XGapp) Bytes() []byte { return []byte(x.String()) }

// WriteFile writes the application into dir and returns its path
func (x *XGapp) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, x.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
