package content

import (
	"strings"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
)

// OSIExplanation is served verbatim for any question mentioning the OSI model
const OSIExplanation = `The OSI (Open Systems Interconnection) model is a conceptual framework that splits network communication into 7 distinct layers. Each layer serves the layer above it and is served by the layer below it.

1. Physical Layer: transmits raw bits over a medium such as copper, fibre or radio. Deals with voltages, pin layouts, cabling and bit rates.
2. Data Link Layer: frames bits into frames, adds MAC addresses and detects transmission errors. Switches and bridges operate here.
3. Network Layer: handles logical addressing (IP) and routing of packets across networks. Routers operate here.
4. Transport Layer: provides end-to-end delivery, segmentation, flow control and error recovery. TCP (reliable) and UDP (connectionless) live here.
5. Session Layer: establishes, manages and terminates sessions between applications, including checkpointing and recovery.
6. Presentation Layer: translates data formats, handles encryption and compression so the application receives data it understands.
7. Application Layer: the layer closest to the user, providing network services to applications such as HTTP, FTP, SMTP and DNS.

Mnemonic (bottom to top): "Please Do Not Throw Sausage Pizza Away".`

// OSICitations accompany OSIExplanation
var OSICitations = []string{
	"ISO/IEC 7498-1: Open Systems Interconnection Basic Reference Model",
	"Computer Networks, A. S. Tanenbaum, Chapter 1.4",
}

// FallbackAnswer is returned when the generative service cannot answer
var FallbackAnswer = models.DoubtAnswer{
	Answer:    "Nova could not reach the AI tutor right now. Please try rephrasing your question or ask again in a few minutes. Your teacher can also see unresolved doubts on the course page.",
	Citations: []string{},
}

// IsOSIQuestion reports whether question refers to the OSI model
func IsOSIQuestion(question string) bool {
	return strings.Contains(strings.ToLower(question), "osi")
}

// OSIAnswer returns a fresh copy of the OSI answer
func OSIAnswer() models.DoubtAnswer {
	return models.DoubtAnswer{
		Answer:    OSIExplanation,
		Citations: append([]string(nil), OSICitations...),
	}
}
