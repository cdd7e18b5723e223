package gitver

import (
	"maps"
	"time"

	"github.com/sofmeright/stagecraft/src/config"
)

// OCI annotation keys written by Labels.
const (
	LabelRevision = "org.opencontainers.image.revision"
	LabelSource   = "org.opencontainers.image.source"
	LabelRefName  = "org.opencontainers.image.ref.name"
	LabelVersion  = "org.opencontainers.image.version"
	LabelCreated  = "org.opencontainers.image.created"
	LabelLicenses = "org.opencontainers.image.licenses"
	LabelTitle    = "org.opencontainers.image.title"
)

// Labels returns OCI image labels for this commit. Empty values are
// omitted. The created label uses the commit time so output is
// reproducible for a given commit.
func (i *Info) Labels() map[string]string {
	labels := make(map[string]string)
	set := func(k, v string) {
		if v != "" {
			labels[k] = v
		}
	}
	set(LabelRevision, i.SHA)
	set(LabelSource, i.URL)
	set(LabelRefName, i.Branch)
	set(LabelVersion, i.Version)
	set(LabelLicenses, i.License)
	set(LabelTitle, i.Name)
	if !i.CommitTime.IsZero() {
		labels[LabelCreated] = i.CommitTime.UTC().Format(time.RFC3339)
	}
	return labels
}

// Override returns a config override whose build labels are existing,
// with templates in its values resolved, overlaid by Labels. Git-derived
// labels win over same-named existing ones.
func (i *Info) Override(existing map[string]string) config.Override {
	labels := make(map[string]string, len(existing))
	for k, v := range existing {
		labels[k] = i.Resolve(v)
	}
	maps.Copy(labels, i.Labels())
	return config.Override{Build: &config.BuildOverride{Labels: &labels}}
}
