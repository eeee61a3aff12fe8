package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ═══════════════════════════════════════════════════════════════════════════
// Certificates
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerCertificateTools() {
	s.mutating(&mcp.Tool{
		Name:        "import_certificate",
		Title:       "Import Certificate",
		Description: "Import an SSL certificate for endpoint encryption. Provide certificate_pem (a PEM text), certificate_wallet (a base64-encoded Oracle wallet), or both; whatever is given is forwarded as-is.",
		InputSchema: objectSchema(map[string]any{
			"certificate_identifier": stringProp("Unique name for the certificate."),
			"certificate_pem":        stringProp("PEM-encoded certificate text."),
			"certificate_wallet":     stringProp("Base64-encoded Oracle wallet file."),
			"tags":                   objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "certificate_identifier"),
	}, s.handleImportCertificate)

	s.readOnly(&mcp.Tool{
		Name:        "describe_certificates",
		Title:       "Describe Certificates",
		Description: "List imported certificates. Filter by certificate-arn or certificate-id.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeCertificates)

	s.destructive(&mcp.Tool{
		Name:        "delete_certificate",
		Title:       "Delete Certificate",
		Description: "Delete an imported certificate. It must not be in use by any endpoint.",
		InputSchema: objectSchema(map[string]any{
			"certificate_arn": stringProp("ARN of the certificate to delete."),
		}, "certificate_arn"),
	}, s.handleDeleteCertificate)
}

func (s *Server) handleImportCertificate(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier string           `json:"certificate_identifier"`
		PEM        string           `json:"certificate_pem"`
		Wallet     []byte           `json:"certificate_wallet"`
		Tags       []map[string]any `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.certificates.ImportCertificate(ctx, args.Identifier, args.PEM, args.Wallet, args.Tags))
}

func (s *Server) handleDescribeCertificates(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.certificates.ListCertificates(ctx, args.options()))
}

func (s *Server) handleDeleteCertificate(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ARN string `json:"certificate_arn"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.certificates.DeleteCertificate(ctx, args.ARN))
}
