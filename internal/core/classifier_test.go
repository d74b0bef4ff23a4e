package core

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"eol-check/internal/types"
)

func newTestClassifier() Classifier {
	return NewClassifier(NewCatalog(testCatalogData()), testToday)
}

func TestClassifyNpmLatestRule(t *testing.T) {
	classifier := newTestClassifier()
	ctx := context.Background()

	tests := []struct {
		name string
		dep  types.Dependency
		want types.Finding
	}{
		{
			name: "caret range below latest is eol",
			dep:  types.Dependency{Name: "react", Version: "^18.2.0", Ecosystem: types.EcosystemNpm},
			want: types.Finding{
				Name:              "react",
				Dependency:        "react",
				Used:              "^18.2.0",
				Required:          "19",
				SupportedVersions: []string{"19", "18"},
				Status:            types.FindingStatusEOL,
			},
		},
		{
			name: "at latest is up to date",
			dep:  types.Dependency{Name: "react", Version: "~19.1.0", Ecosystem: types.EcosystemNpm},
			want: types.Finding{
				Name:              "react",
				Dependency:        "react",
				Used:              "~19.1.0",
				SupportedVersions: []string{"19", "18"},
				Status:            types.FindingStatusUpToDate,
			},
		},
		{
			name: "single greater-than is stripped",
			dep:  types.Dependency{Name: "react", Version: ">19.0.0", Ecosystem: types.EcosystemNpm},
			want: types.Finding{
				Name:              "react",
				Dependency:        "react",
				Used:              ">19.0.0",
				SupportedVersions: []string{"19", "18"},
				Status:            types.FindingStatusUpToDate,
			},
		},
		{
			name: "only one operator character is stripped",
			dep:  types.Dependency{Name: "react", Version: ">=19.0.0", Ecosystem: types.EcosystemNpm},
			want: types.Finding{
				Name:              "react",
				Dependency:        "react",
				Used:              ">=19.0.0",
				Required:          "19",
				SupportedVersions: []string{"19", "18"},
				Status:            types.FindingStatusEOL,
				Note:              NoteStringComparison,
			},
		},
		{
			name: "unparseable falls back to string comparison",
			dep:  types.Dependency{Name: "react", Version: "latest", Ecosystem: types.EcosystemNpm},
			want: types.Finding{
				Name:              "react",
				Dependency:        "react",
				Used:              "latest",
				Required:          "19",
				SupportedVersions: []string{"19", "18"},
				Status:            types.FindingStatusEOL,
				Note:              NoteStringComparison,
			},
		},
		{
			name: "no supported release is eol",
			dep:  types.Dependency{Name: "angularjs", Version: "1.8.3", Ecosystem: types.EcosystemNpm},
			want: types.Finding{
				Name:       "angularjs",
				Dependency: "angularjs",
				Used:       "1.8.3",
				Status:     types.FindingStatusEOL,
				Note:       NoteNoSupportedRelease,
			},
		},
		{
			name: "unknown dependency is unchecked",
			dep:  types.Dependency{Name: "lodash", Version: "^4.17.21", Ecosystem: types.EcosystemNpm},
			want: types.Finding{
				Name:       "lodash",
				Dependency: "lodash",
				Used:       "^4.17.21",
				Status:     types.FindingStatusUnchecked,
				Note:       NoteNotInCatalog,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(ctx, tt.dep)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected finding (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyNpmStripsSingleOperator(t *testing.T) {
	classifier := NewClassifier(NewCatalog(types.EOLData{
		"electron": product("electron", release("18", false), release("17", true)),
	}), testToday)

	tests := []struct {
		version    string
		wantStatus types.FindingStatus
		wantNote   string
	}{
		{version: "^18.0.0", wantStatus: types.FindingStatusUpToDate},
		{version: ">18.0.0", wantStatus: types.FindingStatusUpToDate},
		{version: ">=18.0.0", wantStatus: types.FindingStatusEOL, wantNote: NoteStringComparison},
		{version: "~17.4.0", wantStatus: types.FindingStatusEOL},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got := classifier.Classify(context.Background(), types.Dependency{Name: "electron", Version: tt.version, Ecosystem: types.EcosystemNpm})
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantNote, got.Note)
			if tt.wantStatus == types.FindingStatusEOL {
				assert.Equal(t, "18", got.Required)
			}
		})
	}
}

func TestClassifyCycleRule(t *testing.T) {
	classifier := newTestClassifier()
	ctx := context.Background()

	tests := []struct {
		name         string
		dep          types.Dependency
		wantStatus   types.FindingStatus
		wantRequired string
		wantNote     string
	}{
		{
			name:         "spring boot below every supported cycle",
			dep:          types.Dependency{Name: "spring-boot-starter-parent", Product: "spring-boot", Version: "3.2.5", Ecosystem: types.EcosystemMaven},
			wantStatus:   types.FindingStatusEOL,
			wantRequired: "3.5",
		},
		{
			name:       "spring boot on supported cycle",
			dep:        types.Dependency{Name: "spring-boot-starter-parent", Product: "spring-boot", Version: "3.4.1", Ecosystem: types.EcosystemMaven},
			wantStatus: types.FindingStatusUpToDate,
		},
		{
			name:       "java exact cycle",
			dep:        types.Dependency{Name: "java", Version: "17", Ecosystem: types.EcosystemMaven},
			wantStatus: types.FindingStatusUpToDate,
		},
		{
			name:       "no supported releases is unchecked",
			dep:        types.Dependency{Name: "legacy-lib", Version: "2.1", Ecosystem: types.EcosystemMaven},
			wantStatus: types.FindingStatusUnchecked,
			wantNote:   NoteNoSupportedRelease,
		},
		{
			name:       "skipped dependency is unchecked",
			dep:        types.Dependency{Name: "java", Version: "11", Ecosystem: types.EcosystemMaven, Skip: true},
			wantStatus: types.FindingStatusUnchecked,
			wantNote:   NoteNotInCatalog,
		},
		{
			name:       "pip uses catalog case folding",
			dep:        types.Dependency{Name: "django", Version: "4.2.11", Ecosystem: types.EcosystemPip},
			wantStatus: types.FindingStatusUpToDate,
		},
		{
			name:         "apt eol upstream",
			dep:          types.Dependency{Name: "nodejs", Version: "18.19.0-1nodesource1", Ecosystem: types.EcosystemApt},
			wantStatus:   types.FindingStatusEOL,
			wantRequired: "22",
		},
		{
			name:       "apt supported upstream",
			dep:        types.Dependency{Name: "nodejs", Version: "20.11.1-1nodesource1", Ecosystem: types.EcosystemApt},
			wantStatus: types.FindingStatusUpToDate,
		},
		{
			name:       "string fallback membership",
			dep:        types.Dependency{Name: "ubuntu", Version: "jammy", Ecosystem: types.EcosystemApt},
			wantStatus: types.FindingStatusUpToDate,
			wantNote:   NoteStringComparison,
		},
		{
			name:         "string fallback miss",
			dep:          types.Dependency{Name: "ubuntu", Version: "focal", Ecosystem: types.EcosystemApt},
			wantStatus:   types.FindingStatusEOL,
			wantRequired: "noble",
			wantNote:     NoteStringComparison,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(ctx, tt.dep)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantRequired, got.Required)
			assert.Equal(t, tt.wantNote, got.Note)
			assert.Equal(t, tt.dep.ReportName(), got.Dependency)
		})
	}
}

func TestClassifyAllGroupsByStatus(t *testing.T) {
	classifier := newTestClassifier()
	target := types.Target{Name: "frontend", Ecosystem: types.EcosystemNpm, Path: "frontend/package.json"}
	report := classifier.ClassifyAll(context.Background(), target, []types.Dependency{
		{Name: "react", Version: "^18.2.0", Ecosystem: types.EcosystemNpm},
		{Name: "lodash", Version: "^4.17.21", Ecosystem: types.EcosystemNpm},
		{Name: "nodejs", Version: "22.1.0", Ecosystem: types.EcosystemNpm},
	})

	assert.Equal(t, target, report.Target)
	assert.Len(t, report.EOL, 1)
	assert.Len(t, report.UpToDate, 1)
	assert.Len(t, report.Unchecked, 1)
	assert.Equal(t, "react", report.EOL[0].Dependency)
	assert.Equal(t, "nodejs", report.UpToDate[0].Dependency)
	assert.Equal(t, "lodash", report.Unchecked[0].Dependency)
}

func TestClassifySkipReason(t *testing.T) {
	classifier := newTestClassifier()
	got := classifier.Classify(context.Background(), types.Dependency{
		Name:       "django",
		Ecosystem:  types.EcosystemPip,
		Skip:       true,
		SkipReason: "no version pinned",
	})
	assert.Equal(t, types.FindingStatusUnchecked, got.Status)
	assert.Equal(t, "no version pinned", got.Note)
}
