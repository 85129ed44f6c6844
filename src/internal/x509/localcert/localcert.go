// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package localcert

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("localcert: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("localcert: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("localcert: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("localcert: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("localcert: no certificates found in PKCS7 data")

	// ErrCertificateExpired indicates that a certificate offered for upload
	// has already passed its NotAfter date.
	ErrCertificateExpired = errors.New("localcert: certificate is expired")
)

// certBlockType is the PEM block type accepted by the decoder.
const certBlockType = "CERTIFICATE"

// Summary describes the identity and lifetime of a local certificate,
// extracted before the file is pushed to an appliance.
type Summary struct {
	Subject                string
	SubjectAlternativeName string
	NotBefore              time.Time
	NotAfter               time.Time
}

// ExpiresWithin reports whether the certificate expires strictly before
// now plus the given number of days.
func (s Summary) ExpiresWithin(now time.Time, days int) bool {
	return s.NotAfter.Before(now.AddDate(0, 0, days))
}

// isPEM checks if the data is in PEM format.
func isPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// Decode decodes a single certificate from PEM, DER, or PKCS7 data.
func Decode(data []byte) (*x509.Certificate, error) {
	if isPEM(data) {
		block, _ := pem.Decode(data)
		if block == nil {
			return nil, ErrInvalidPEMBlock
		}
		if block.Type != certBlockType {
			return nil, ErrInvalidBlockType
		}

		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	// Attempt to parse as PKCS7 using Cloudflare's library
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParsePKCS7
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	return p.Content.SignedData.Certificates[0], nil
}

// DecodeMultiple decodes one or more certificates from data. PEM bundles
// yield every certificate block; raw data is parsed as concatenated DER.
func DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if isPEM(data) {
		var certs []*x509.Certificate

		for len(data) > 0 {
			block, rest := pem.Decode(data)
			if block == nil {
				break
			}
			if block.Type != certBlockType {
				return nil, ErrInvalidBlockType
			}

			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, ErrParseCertificate
			}

			certs = append(certs, cert)
			data = rest
		}

		return certs, nil
	}

	certs, err := x509.ParseCertificates(data)
	if err != nil {
		return nil, ErrParseCertificate
	}

	return certs, nil
}

// Summarize decodes a single certificate and extracts its subject,
// subject alternative names, and validity window.
func Summarize(data []byte) (Summary, error) {
	cert, err := Decode(data)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Subject:                cert.Subject.String(),
		SubjectAlternativeName: strings.Join(cert.DNSNames, ","),
		NotBefore:              cert.NotBefore,
		NotAfter:               cert.NotAfter,
	}, nil
}

// CheckNotExpired decodes a certificate and rejects it when its NotAfter
// date has already passed. It is the preflight gate before uploading a
// certificate to an appliance.
func CheckNotExpired(data []byte, now time.Time) (Summary, error) {
	summary, err := Summarize(data)
	if err != nil {
		return Summary{}, err
	}
	if !now.Before(summary.NotAfter) {
		return summary, fmt.Errorf("%w: %s expired on %s",
			ErrCertificateExpired, summary.Subject, summary.NotAfter.Format(time.RFC3339))
	}
	return summary, nil
}

// CheckFileNotExpired reads a local certificate file and applies
// [CheckNotExpired] to its contents.
func CheckFileNotExpired(path string, now time.Time) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, err
	}
	return CheckNotExpired(data, now)
}
