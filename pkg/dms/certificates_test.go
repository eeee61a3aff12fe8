package dms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCertificateForwardsBothMaterials(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Certificate": map[string]any{"CertificateArn": "cert-arn"}},
	}}
	m := NewCertificateManager(inv)

	wallet := []byte{0x01, 0x02}
	res, err := m.ImportCertificate(context.Background(), "my-cert", "PEM-DATA", wallet, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Certificate imported successfully", res.Data["message"])

	call := inv.lastCall(t)
	assert.Equal(t, "import_certificate", call.Operation)
	assert.Equal(t, "PEM-DATA", call.Params["CertificatePem"])
	assert.Equal(t, wallet, call.Params["CertificateWallet"])
}

func TestImportCertificateOmitsAbsentMaterials(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Certificate": map[string]any{"CertificateArn": "cert-arn"}},
	}}
	m := NewCertificateManager(inv)

	_, err := m.ImportCertificate(context.Background(), "my-cert", "", nil, nil)
	require.NoError(t, err)

	call := inv.lastCall(t)
	assert.NotContains(t, call.Params, "CertificatePem")
	assert.NotContains(t, call.Params, "CertificateWallet")
	assert.NotContains(t, call.Params, "Tags")
}
