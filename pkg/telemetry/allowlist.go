package telemetry

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/pwshgo/telemetry/pkg/paths"
)

// allowlistFileName is an optional per-installation extension of the
// built-in allowlists, read once at startup.
const allowlistFileName = "allowlist.yaml"

// Allowlist holds the fixed, process-wide sets of names that may be
// reported verbatim. It is built once at startup and never mutated, so
// unsynchronized concurrent reads are safe.
type Allowlist struct {
	modules          map[string]struct{}
	features         map[string]struct{}
	applicationTypes map[string]struct{}
}

// allowlistFile is the on-disk extension format.
type allowlistFile struct {
	Modules          []string `yaml:"modules,omitempty"`
	Features         []string `yaml:"features,omitempty"`
	ApplicationTypes []string `yaml:"application_types,omitempty"`
}

// NewAllowlist builds the allowlist from the built-in name sets plus the
// optional extension file in the user's config directory. A missing or
// malformed extension file is ignored.
func NewAllowlist() *Allowlist {
	return newAllowlist(filepath.Join(paths.GetConfigDir(), allowlistFileName))
}

func newAllowlist(extensionPath string) *Allowlist {
	a := &Allowlist{
		modules:          toSet(knownModuleNames),
		features:         toSet(knownFeatureNames),
		applicationTypes: toSet(knownApplicationTypes),
	}
	a.mergeExtensionFile(extensionPath)
	return a
}

// mergeExtensionFile folds an extension file into the sets under
// construction. This runs only during NewAllowlist; the result is immutable
// afterwards.
func (a *Allowlist) mergeExtensionFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var ext allowlistFile
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return
	}
	for _, name := range ext.Modules {
		a.modules[name] = struct{}{}
	}
	for _, name := range ext.Features {
		a.features[name] = struct{}{}
	}
	for _, name := range ext.ApplicationTypes {
		a.applicationTypes[name] = struct{}{}
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// knownModuleNames are the module names that may be reported verbatim.
// Membership is case-sensitive. Everything else is reported as
// AnonymousName.
var knownModuleNames = []string{
	"Microsoft.PowerShell.Archive",
	"Microsoft.PowerShell.Core",
	"Microsoft.PowerShell.Diagnostics",
	"Microsoft.PowerShell.Host",
	"Microsoft.PowerShell.LocalAccounts",
	"Microsoft.PowerShell.Management",
	"Microsoft.PowerShell.ODataUtils",
	"Microsoft.PowerShell.Operation.Validation",
	"Microsoft.PowerShell.PSResourceGet",
	"Microsoft.PowerShell.Security",
	"Microsoft.PowerShell.Utility",
	"Microsoft.WSMan.Management",
	"CimCmdlets",
	"ISE",
	"PackageManagement",
	"Pester",
	"PowerShellGet",
	"PSDesiredStateConfiguration",
	"PSDiagnostics",
	"PSReadLine",
	"PSScheduledJob",
	"PSScriptAnalyzer",
	"PSWorkflow",
	"ThreadJob",
	"platyPS",
	"posh-git",
	"AWSPowerShell",
	"Az",
	"Az.Accounts",
	"Az.Compute",
	"Az.Resources",
	"Az.Storage",
	"AzureAD",
	"AzureRM",
	"ActiveDirectory",
	"AppLocker",
	"BitLocker",
	"DnsClient",
	"Defender",
	"ExchangeOnlineManagement",
	"GroupPolicy",
	"Hyper-V",
	"Microsoft.Graph",
	"NetAdapter",
	"NetSecurity",
	"NetTCPIP",
	"PKI",
	"ScheduledTasks",
	"SmbShare",
	"SqlServer",
	"Storage",
	"VMware.PowerCLI",
}

// knownFeatureNames are the experimental feature tags that may be reported
// verbatim.
var knownFeatureNames = []string{
	"PSCommandNotFoundSuggestion",
	"PSCommandWithArgs",
	"PSFeedbackProvider",
	"PSLoadAssemblyFromNativeCode",
	"PSModuleAutoLoadSkipOfflineFiles",
	"PSNativeCommandErrorActionPreference",
	"PSNativeCommandArgumentPassing",
	"PSNativePSPathResolution",
	"PSSubsystemPluginModel",
	"PSStrictModeAssignment",
}

// knownApplicationTypes are the host application types that may be reported
// verbatim.
var knownApplicationTypes = []string{
	"console",
	"server",
	"serverremotehost",
	"minishell",
	"custom",
}
