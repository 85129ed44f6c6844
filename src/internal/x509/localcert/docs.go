// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package localcert decodes local [X.509] certificate files in [PEM], DER,
// and [PKCS7] formats and extracts the subject, alternative names, and
// validity window. It is the preflight gate used before uploading
// certificates to an appliance: already-expired material is rejected
// client-side instead of being installed and immediately reported.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package localcert
