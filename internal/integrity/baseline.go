package integrity

// The baseline feelings document ships inside the binary: the JSON array,
// obfuscated with the document key, plus the reference checksum of its
// parsed form. The pair only catches local corruption of the shipped
// asset; anyone with the source can regenerate a consistent pair, and the
// design does not pretend otherwise.
const (
	baselineCiphertext = "GRBLGxQ1Ez0MfXxHVllZD1dEbzJVUUBXRGt7U1tuSQQLFCMAEw19fEdUWlldVxBrNlRWQQNEb3pVTXpZDVxRYFNECm5/VVJcC15RQTxlB1NCVRJtfFRAc1tdC1ZkU0BYa3ZRUVRbVlVFazVVU0NURWx7B0l0XA9dAWAARV5tf1FQTkVMAh08IRwTBgAQfXERCzcOFEIcchQHDS0PAUdWS1xXQ29jVVNCVUR9Z0cUJxgaDwA1Q05KbndVUVxdXgVHaGBTU0ZURW9/Vk9wD1lWVjRUQFhrdwZUXV4IVUdvMVRWQQdAPXoESSRbWF1SZFBFCm9wVgZeX1oBQj5iBlNCVENqf1YccVJZXlJpUkFZZnZVVA1YXVRGbzVQV0IGR294UUlzX1lMS3IEGgstPxURCQ1MXQctJgAeXh5WKjgACwsPS1RFYgRFDW9yVQdcUExLUTI2FhATAhF9cUdIcVoMXldgA0VbaHZVUF1cX1ZBPGVWUxFVRW96VRtzClxaVDJTQFlvdwdXCVkLU0R9f0cGHAYGJjsRHCZJUxoVJQQJNQ=="

	baselineSignature = "48b896b0"
)
